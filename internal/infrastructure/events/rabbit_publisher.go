// Package events publica los eventos de auditoría del catálogo en RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

const publishTimeout = 5 * time.Second

// channel subconjunto de *amqp.Channel que usa el publicador.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher implementa usecase.AuditPublisher sobre un exchange "direct".
// Routing key: "<entidad>.<acción>", p.ej. "company.created".
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	log      *logger.Logger
}

// NewRabbitPublisher abre conexión y canal y declara el exchange (durable).
func NewRabbitPublisher(cfg config.AMQPConfig, log *logger.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp: conectar: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp: declarar exchange %s: %w", cfg.Exchange, err)
	}
	return &RabbitPublisher{conn: conn, ch: ch, exchange: cfg.Exchange, log: log.Named("events")}, nil
}

// Publish serializa el evento como JSON persistente. El error se registra y se devuelve;
// los casos de uso lo ignoran porque la escritura ya está confirmada.
func (p *RabbitPublisher) Publish(ctx context.Context, ev usecase.AuditEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	key := RoutingKey(ev)
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    ev.At,
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		p.log.Error().Err(err).Str("routing_key", key).Int64("id", ev.ID).Msg("no se pudo publicar evento de auditoría")
		return err
	}
	p.log.Debug().Str("routing_key", key).Int64("id", ev.ID).Msg("evento publicado")
	return nil
}

// Close cierra canal y conexión.
func (p *RabbitPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RoutingKey "<entidad>.<acción>" en minúsculas.
func RoutingKey(ev usecase.AuditEvent) string {
	return strings.ToLower(ev.Entity) + "." + ev.Action
}

// LogPublisher publicador de respaldo cuando no hay broker: solo registra el evento.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log.Named("events")}
}

func (p *LogPublisher) Publish(_ context.Context, ev usecase.AuditEvent) error {
	e := p.log.Info().Str("routing_key", RoutingKey(ev)).Int64("id", ev.ID).Time("at", ev.At)
	if ev.ActorID != nil {
		e = e.Int64("actor_id", *ev.ActorID)
	}
	e.Msg("auditoría")
	return nil
}
