package fetcher

import (
	"net/url"
)

// redactURL 로그에 남기기 전에 URL의 사용자 정보와 쿼리 값을 가린다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	cp := *u
	if cp.User != nil {
		cp.User = url.User("xxxxx")
	}
	if cp.RawQuery != "" {
		q := cp.Query()
		for k := range q {
			q.Set(k, "xxxxx")
		}
		cp.RawQuery = q.Encode()
	}

	return cp.String()
}
