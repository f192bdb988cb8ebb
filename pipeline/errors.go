package pipeline

import "fmt"

// ValidationError 는 작업을 시작하기 전에 거부된 입력이다.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError 는 검색 결과 저장 실패다. 이 경우 어떤 행도 커밋되지 않는다.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persist search: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
