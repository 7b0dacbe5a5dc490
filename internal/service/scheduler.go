package service

import (
	"time"
)

// Timer - взведенный однократный таймер
type Timer interface {
	Stop() bool
}

// Scheduler взводит таймеры дедлайнов
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

// NewRealScheduler возвращает планировщик на time.AfterFunc
func NewRealScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
