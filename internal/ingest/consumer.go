package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/internal/metrics"
	"github.com/quckapp/audit/params"
)

// Stream names the consumer subscribes to. Each carries a different wire
// shape; see mapper.go.
const (
	StreamAuditEvents = "audit-events"
	StreamUserEvents  = "user-events"
	StreamAuthEvents  = "auth-events"
)

// payloadField is the stream entry field holding the JSON event body.
const payloadField = "payload"

// Consumer pulls platform events from Redis streams and turns them into
// audit records. A poison message is logged, counted and acknowledged;
// ingestion never stalls on one bad event.
type Consumer struct {
	client   redis.UniversalClient
	service  *auditlog.Service
	streams  []string
	group    string
	consumer string
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

func NewConsumer(client redis.UniversalClient, service *auditlog.Service, streams []string, group, consumer string) *Consumer {
	if len(streams) == 0 {
		streams = []string{StreamAuditEvents, StreamUserEvents, StreamAuthEvents}
	}
	return &Consumer{
		client:   client,
		service:  service,
		streams:  streams,
		group:    group,
		consumer: consumer,
	}
}

// Start creates the consumer group on each stream and launches the read
// loop. It returns once the loop is running.
func (c *Consumer) Start(ctx context.Context) error {
	for _, stream := range c.streams {
		err := c.client.XGroupCreateMkStream(ctx, stream, c.group, "0").Err()
		if err != nil && !isBusyGroup(err) {
			return err
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	go c.loop(runCtx)

	slog.Info("Event ingestion started", "streams", strings.Join(c.streams, ","), "group", c.group, "consumer", c.consumer)
	return nil
}

// Stop terminates the read loop and waits for in-flight events to finish.
func (c *Consumer) Stop() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.wg.Wait()
	slog.Info("Event ingestion stopped")
}

func (c *Consumer) loop(ctx context.Context) {
	defer c.wg.Done()

	// XREADGROUP wants stream names followed by one ">" per stream.
	args := make([]string, 0, len(c.streams)*2)
	args = append(args, c.streams...)
	for range c.streams {
		args = append(args, ">")
	}

	for {
		if ctx.Err() != nil {
			return
		}
		results, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  args,
			Count:    params.IngestBatchSize,
			Block:    params.IngestReadBlock,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			slog.Error("Failed to read event streams", "error", err)
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				c.handle(ctx, stream.Stream, msg)
			}
		}
	}
}

func (c *Consumer) handle(ctx context.Context, stream string, msg redis.XMessage) {
	payload, ok := msg.Values[payloadField].(string)
	if !ok {
		slog.Warn("Stream entry missing payload field", "stream", stream, "id", msg.ID)
		metrics.EventsIngested.WithLabelValues(stream, "skipped").Inc()
		c.ack(ctx, stream, msg.ID)
		return
	}

	var (
		input auditlog.CreateRecordInput
		keep  bool
		err   error
	)
	switch stream {
	case StreamUserEvents:
		input, keep, err = MapUserEvent([]byte(payload))
	case StreamAuthEvents:
		input, keep, err = MapAuthEvent([]byte(payload))
	default:
		input, err = MapAuditEvent([]byte(payload))
		keep = err == nil
	}
	if err != nil {
		slog.Error("Failed to decode event", "stream", stream, "id", msg.ID, "error", err)
		metrics.EventsIngested.WithLabelValues(stream, "failed").Inc()
		c.ack(ctx, stream, msg.ID)
		return
	}
	if !keep {
		slog.Debug("Skipping unmapped event", "stream", stream, "id", msg.ID)
		metrics.EventsIngested.WithLabelValues(stream, "skipped").Inc()
		c.ack(ctx, stream, msg.ID)
		return
	}

	if _, err := c.service.CreateRecord(ctx, input); err != nil {
		// The entry stays pending and will be redelivered; transient store
		// failures must not lose audit events.
		slog.Error("Failed to persist ingested event", "stream", stream, "id", msg.ID, "error", err)
		metrics.EventsIngested.WithLabelValues(stream, "failed").Inc()
		return
	}
	metrics.EventsIngested.WithLabelValues(stream, "ok").Inc()
	c.ack(ctx, stream, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, stream, id string) {
	if err := c.client.XAck(ctx, stream, c.group, id).Err(); err != nil {
		slog.Warn("Failed to ack stream entry", "stream", stream, "id", id, "error", err)
	}
}

func isBusyGroup(err error) bool {
	return err != nil && strings.Contains(err.Error(), "BUSYGROUP")
}
