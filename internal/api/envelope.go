package api

import (
	"bytes"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Конверт ответа бэкенда: {success, code, data, error, timestamp}.
type envelope struct {
	Success   bool                `json:"success"`
	Code      int                 `json:"code"`
	Data      jsoniter.RawMessage `json:"data"`
	Error     jsoniter.RawMessage `json:"error"`
	Timestamp string              `json:"timestamp"`
}

// errorMessage достаёт текст ошибки: бэкенд шлёт то строку,
// то объект {message, code}.
func (e *envelope) errorMessage() string {
	if len(e.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Error, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Error, &obj); err == nil {
		return obj.Message
	}
	return string(e.Error)
}

// UnwrapList разворачивает список из data независимо от того, пришёл
// ли массив сам по себе или завёрнут в объект под одним из ключей
// (data.comments, data.rules и т.п.). Обязательная защита: формы
// ответов у бэкенда разъезжаются от ручки к ручке.
func UnwrapList(data []byte, keys ...string) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: empty data, tried keys [%s]", ErrShape, strings.Join(keys, ", "))
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: data is neither array nor object", ErrShape)
	}

	var obj map[string]jsoniter.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		inner := bytes.TrimSpace(raw)
		if len(inner) > 0 && inner[0] == '[' {
			return inner, nil
		}
	}
	return nil, fmt.Errorf("%w: no list under keys [%s]", ErrShape, strings.Join(keys, ", "))
}

// unwrapObject — то же для одиночной сущности: data либо сам объект,
// либо объект под одним из ключей (data.rule, data.technique).
func unwrapObject(data []byte, keys ...string) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: data is not an object", ErrShape)
	}
	var obj map[string]jsoniter.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		inner := bytes.TrimSpace(raw)
		if len(inner) > 0 && inner[0] == '{' {
			return inner, nil
		}
	}
	return trimmed, nil
}
