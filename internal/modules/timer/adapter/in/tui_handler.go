package in

import (
	"context"
	"unicode/utf8"

	"tomato/internal/modules/timer/dto"
	timerin "tomato/internal/modules/timer/port/in"
)

type TUIHandler struct {
	usecase timerin.Usecase
}

func NewTUIHandler(usecase timerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

// Key maps a bubbletea key name to a clock intent. Unmapped multi-rune keys
// are ignored and report ok=false.
func (h TUIHandler) Key(ctx context.Context, key string) (dto.ApplyOutput, bool, error) {
	input, ok := intentForKey(key)
	if !ok {
		return dto.ApplyOutput{Snapshot: h.usecase.Snapshot(ctx)}, false, nil
	}
	out, err := h.usecase.Apply(ctx, input)
	return out, true, err
}

// Runes feeds typed or pasted text one character at a time. Persistence
// results from any step are kept in the returned output.
func (h TUIHandler) Runes(ctx context.Context, runes []rune) (dto.ApplyOutput, error) {
	out := dto.ApplyOutput{Snapshot: h.usecase.Snapshot(ctx)}
	var persisted *dto.PersistedRecord
	var persistErr error
	for _, r := range runes {
		next, err := h.usecase.Apply(ctx, dto.ApplyInput{Intent: dto.IntentCharacter, Char: r})
		if err != nil {
			return next, err
		}
		out = next
		if out.Persisted != nil {
			persisted = out.Persisted
		}
		if out.PersistErr != nil {
			persistErr = out.PersistErr
		}
		if out.Quit {
			break
		}
	}
	out.Persisted, out.PersistErr = persisted, persistErr
	return out, nil
}

func (h TUIHandler) Tick(ctx context.Context) (dto.ApplyOutput, error) {
	return h.usecase.Apply(ctx, dto.ApplyInput{Intent: dto.IntentTick})
}

func (h TUIHandler) Quit(ctx context.Context) (dto.ApplyOutput, error) {
	return h.usecase.Apply(ctx, dto.ApplyInput{Intent: dto.IntentQuit})
}

func (h TUIHandler) Snapshot(ctx context.Context) dto.Snapshot {
	return h.usecase.Snapshot(ctx)
}

func intentForKey(key string) (dto.ApplyInput, bool) {
	switch key {
	case "enter":
		return dto.ApplyInput{Intent: dto.IntentConfirm}, true
	case "esc":
		return dto.ApplyInput{Intent: dto.IntentCancel}, true
	case "backspace":
		return dto.ApplyInput{Intent: dto.IntentBackspace}, true
	case "ctrl+c":
		return dto.ApplyInput{Intent: dto.IntentQuit}, true
	case "space", " ":
		return dto.ApplyInput{Intent: dto.IntentCharacter, Char: ' '}, true
	}
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		return dto.ApplyInput{Intent: dto.IntentCharacter, Char: r}, true
	}
	return dto.ApplyInput{}, false
}
