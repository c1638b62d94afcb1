package usecase

import (
	"time"

	timerin "tomato/internal/modules/timer/port/in"
)

func SetNotifyTimeout(uc timerin.Usecase, d time.Duration) {
	uc.(*Interactor).notifyTimeout = d
}
