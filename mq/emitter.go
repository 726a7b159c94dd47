package mq

import (
	"context"
	"encoding/json"
	"log"

	"vitrina/rdx"
)

const catalogChannel = "catalog-events"

// Event describes a catalog or order mutation for interested workers.
type Event struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityID   string `json:"entity_id"`
}

// Emit publishes the event to the catalog channel. Failures are logged and
// dropped; event delivery is best effort.
func Emit(ctx context.Context, eventName string, content Event) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, catalogChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}

// StartCatalogWorker invalidates the cached dashboard indicators whenever a
// product, user or order changes, so admin metrics stay fresh without a
// recount on every request.
func StartCatalogWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, catalogChannel)
	ch := sub.Channel()

	log.Println("[CatalogWorker] Listening for catalog events...")

	for msg := range ch {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[CatalogWorker] Failed to parse event: %v", err)
			continue
		}

		if err := rdx.RdxDel("dashboard:indicators"); err != nil {
			log.Printf("[CatalogWorker] Failed to drop indicators cache: %v", err)
		}
	}
}
