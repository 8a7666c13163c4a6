package results

import (
	"context"
	"errors"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLSink appends results to a yaml file. Each write is a one-element
// list, so the file stays a single valid list across runs.
type YAMLSink struct {
	mu sync.Mutex
	f  *os.File
}

func NewYAMLSink(path string) (*YAMLSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &YAMLSink{f: f}, nil
}

func (s *YAMLSink) Record(ctx context.Context, r *Result) error {
	out, err := yaml.Marshal([]*Result{r})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.f.Write(out)
	return err
}

func (s *YAMLSink) Close() error {
	return s.f.Close()
}

// ReadYAML loads every result in a file written by a YAMLSink.
func ReadYAML(path string) ([]*Result, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var rs []*Result
	if err := yaml.Unmarshal(bts, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}
