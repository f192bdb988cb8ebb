package trace

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Info 는 하나의 검색 요청(HTTP 또는 CLI 실행)에 대한 추적 정보다.
// spanSeq 는 같은 요청 안에서 아웃바운드 프로바이더 호출마다 1씩 증가한다.
// 프로바이더 호출은 동시에 일어나므로 atomic 으로만 접근한다.
type Info struct {
	RequestID string
	spanSeq   int64
}

// GenerateID returns a new request id.
func GenerateID() string {
	return uuid.NewString()
}

// WithRequest 는 requestID 와 span 시퀀스 0 을 담은 컨텍스트를 반환한다.
func WithRequest(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateID()
	}
	return context.WithValue(ctx, ctxKey{}, &Info{RequestID: requestID})
}

func infoFromContext(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKey{}).(*Info)
	return v
}

func RequestIDFromContext(ctx context.Context) string {
	if info := infoFromContext(ctx); info != nil {
		return info.RequestID
	}
	return ""
}

// CurrentSpanID 는 증가 없이 현재 span 값을 반환한다.
func CurrentSpanID(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return "0"
	}
	return strconv.FormatInt(atomic.LoadInt64(&info.spanSeq), 10)
}

// NextSpanID 는 span 을 1 증가시키고 (requestID, spanID) 를 반환한다.
// 추적 정보가 없는 컨텍스트에서는 새 requestID 와 span "1" 을 반환한다.
func NextSpanID(ctx context.Context) (string, string) {
	info := infoFromContext(ctx)
	if info == nil {
		return GenerateID(), "1"
	}
	return info.RequestID, strconv.FormatInt(atomic.AddInt64(&info.spanSeq, 1), 10)
}
