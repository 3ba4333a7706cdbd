package events

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"comicapp/catalog/adapters/viewdto"
	"comicapp/catalog/screens"
)

const SubjectPrefix = "comicapp.screens."

func Subject(session string) string {
	return SubjectPrefix + session
}

type Publisher struct {
	log *slog.Logger
	nc  *nats.Conn
}

func NewPublisher(log *slog.Logger, addr string) (*Publisher, error) {
	nc, err := nats.Connect(addr)
	if err != nil {
		log.Error("failed to connect to nats", "address", addr, "error", err)
		return nil, err
	}
	return &Publisher{log: log, nc: nc}, nil
}

func (p *Publisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.log.Error("failed to drain nats connection", "error", err)
	}
}

// PublishView sends v as JSON on the session subject.
func (p *Publisher) PublishView(session string, v screens.View) {
	if p.nc == nil {
		return
	}
	data, err := json.Marshal(viewdto.FromView(v))
	if err != nil {
		p.log.Error("failed to encode view", "session", session, "error", err)
		return
	}
	if err := p.nc.Publish(Subject(session), data); err != nil {
		p.log.Error("failed to publish view", "session", session, "error", err)
		return
	}
	if err := p.nc.Flush(); err != nil {
		p.log.Warn("failed to flush nats connection", "error", err)
	}
}
