package llm

import (
	"context"
	"time"
)

// attemptOutcome 是单次调用尝试的归类结果，驱动 Complete 中的状态转移。
type attemptOutcome int

const (
	outcomeSuccess attemptOutcome = iota
	outcomeRetryable
	outcomeFatal
)

// SleepFunc 抽象了退避等待，便于测试注入假时钟。
// 返回非 nil 错误表示等待期间 ctx 被取消。
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepWithContext 在 d 与 ctx 取消之间等待先到者，不做忙等。
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoffSchedule 跟踪剩余尝试次数并产出逐次翻倍的退避时长。
// 429 与网络错误共享同一个计数器。
type backoffSchedule struct {
	attemptsLeft int
	nextDelay    time.Duration
}

// newBackoffSchedule 创建一个退避计划。maxAttempts 计入首次尝试。
func newBackoffSchedule(maxAttempts int, initial time.Duration) *backoffSchedule {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &backoffSchedule{
		// 首次尝试在调用 Next 之前已经消耗
		attemptsLeft: maxAttempts - 1,
		nextDelay:    initial,
	}
}

// Next 返回下一次重试前的等待时长。第二个返回值为 false 表示尝试已用尽。
func (s *backoffSchedule) Next() (time.Duration, bool) {
	if s.attemptsLeft <= 0 {
		return 0, false
	}
	s.attemptsLeft--
	d := s.nextDelay
	s.nextDelay *= 2
	return d, true
}

func initialBackoff(ms int) time.Duration {
	if ms <= 0 {
		ms = 500
	}
	return time.Duration(ms) * time.Millisecond
}
