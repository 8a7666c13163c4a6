package results

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

type publisher interface {
	Publish(subj string, data []byte) error
}

// NATSSink publishes each result as JSON on a subject.
type NATSSink struct {
	pub     publisher
	nc      *nats.Conn
	subject string
}

func NewNATSSink(url, subject string) (*NATSSink, error) {
	nc, err := nats.Connect(url, nats.Name("patience"))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("url", url).Str("subject", subject).Msg("connected-to-nats")
	return &NATSSink{pub: nc, nc: nc, subject: subject}, nil
}

func (s *NATSSink) Record(ctx context.Context, r *Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.pub.Publish(s.subject, data)
}

func (s *NATSSink) Close() error {
	if s.nc == nil {
		return nil
	}
	// Drain flushes anything still buffered before closing.
	return s.nc.Drain()
}
