package mail

import (
	"context"
	"log"
)

// Sink is the outbound notification contract. Failures are the sink's own
// problem; callers of the dispatcher never see them.
type Sink interface {
	Send(to string, code string, purpose string) error
}

type message struct {
	to      string
	code    string
	purpose string
}

// Dispatcher decouples OTP issuance from mail transport. Delivery runs on
// a single background goroutine; a full queue drops the message with a log
// line rather than blocking the request.
type Dispatcher struct {
	sink  Sink
	queue chan message
}

func NewDispatcher(sink Sink, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		sink:  sink,
		queue: make(chan message, buffer),
	}
}

func (dispatcher *Dispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-dispatcher.queue:
				if err := dispatcher.sink.Send(msg.to, msg.code, msg.purpose); err != nil {
					log.Printf("send OTP mail to %s failed: %v", msg.to, err)
				}
			}
		}
	}()
}

func (dispatcher *Dispatcher) Dispatch(to string, code string, purpose string) {
	select {
	case dispatcher.queue <- message{to: to, code: code, purpose: purpose}:
	default:
		log.Printf("mail queue full, dropping OTP mail to %s", to)
	}
}
