package job

import (
	"bytes"
	"encoding/json"
)

// Source Worker에 등록할 수 있는 작업의 표현입니다.
//
// 이미 생성된 *Job 인스턴스이거나, Registry를 통해 생성될 Definition 중 하나입니다.
type Source interface {
	build(r *Registry) (*Job, error)
}

var (
	_ Source = (*Job)(nil)
	_ Source = Definition{}
)

// Definition 프로세스 경계를 넘어 전달되는 작업 정의입니다.
//
//	{"type": "echo", "args": ["I love bananas.", 1000]}
type Definition struct {
	Type string `json:"type"`
	Args []any  `json:"args,omitempty"`
}

func (d Definition) build(r *Registry) (*Job, error) {
	t, err := ParseType(d.Type)
	if err != nil {
		return nil, err
	}
	return r.NewJob(t, d.Args)
}

// UnmarshalJSON args가 존재한다면 반드시 배열이어야 한다는 규칙을 디코딩 단계에서 검사합니다.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type string          `json:"type"`
		Args json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Type = raw.Type
	d.Args = nil

	args := bytes.TrimSpace(raw.Args)
	if len(args) == 0 || bytes.Equal(args, []byte("null")) {
		return nil
	}
	if args[0] != '[' {
		return ErrArgsNotArray
	}

	return json.Unmarshal(args, &d.Args)
}
