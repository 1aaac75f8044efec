package utils

import (
	"bytes"
	"sync"

	"github.com/bytedance/sonic"
)

type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) get() *bytes.Buffer {
	if buf := p.pool.Get(); buf != nil {
		return buf.(*bytes.Buffer)
	}
	return bytes.NewBuffer(make([]byte, 0, 1024))
}

func (p *bufferPool) put(buf *bytes.Buffer) {
	buf.Reset()
	if buf.Cap() < 64*1024 {
		p.pool.Put(buf)
	}
}

var jsonPool = &bufferPool{}

// Marshal encodes v with sonic. The returned slice is owned by the caller.
func Marshal(v interface{}) ([]byte, error) {
	buf := jsonPool.get()
	defer jsonPool.put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}

	// Encoder appends a trailing newline
	out := bytes.TrimRight(buf.Bytes(), "\n")
	result := make([]byte, len(out))
	copy(result, out)
	return result, nil
}

// Unmarshal decodes data into target
func Unmarshal[T any](data []byte, target *T) error {
	return sonic.ConfigStd.Unmarshal(data, target)
}

// UnmarshalAny decodes data into an arbitrary target, for callers holding an interface{}
func UnmarshalAny(data []byte, target interface{}) error {
	return sonic.ConfigStd.Unmarshal(data, target)
}
