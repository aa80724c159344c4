package audit

import "go.uber.org/zap"

type Event struct {
	AccountID *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Recorder persiste um evento de auditoria. *Logger é a implementação
// de produção.
type Recorder interface {
	Log(accountID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	rec   Recorder
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(rec Recorder, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		rec:   rec,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.rec.Log(
			ev.AccountID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

// Dispatch nunca bloqueia o request; fila cheia descarta o evento.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}
