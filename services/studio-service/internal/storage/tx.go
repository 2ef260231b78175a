package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/recordstore"
)

type collection[T any] struct {
	key     string
	loaded  bool
	items   []T
	version int64
	dirty   bool
	deleted bool
}

// Tx is the unit of work handed to Repository.Update. It is only valid inside the callback.
type Tx struct {
	ctx  context.Context
	repo *Repository

	appointments collection[model.Appointment]
	clients      collection[model.Client]
	treatments   collection[model.Treatment]
	posts        collection[model.Post]
}

func (tx *Tx) Appointments() ([]model.Appointment, error) {
	return get(tx, &tx.appointments, KeyAppointments)
}

func (tx *Tx) SetAppointments(items []model.Appointment) error {
	return set(tx, &tx.appointments, KeyAppointments, items)
}

func (tx *Tx) Clients() ([]model.Client, error) {
	return get(tx, &tx.clients, KeyClients)
}

func (tx *Tx) SetClients(items []model.Client) error {
	return set(tx, &tx.clients, KeyClients, items)
}

func (tx *Tx) Treatments() ([]model.Treatment, error) {
	return get(tx, &tx.treatments, KeyTreatments)
}

func (tx *Tx) SetTreatments(items []model.Treatment) error {
	return set(tx, &tx.treatments, KeyTreatments, items)
}

func (tx *Tx) Posts() ([]model.Post, error) {
	return get(tx, &tx.posts, KeyPosts)
}

func (tx *Tx) SetPosts(items []model.Post) error {
	return set(tx, &tx.posts, KeyPosts, items)
}

// Clear removes whole collections from the store.
func (tx *Tx) Clear(keys ...string) error {
	for _, key := range keys {
		var err error
		switch key {
		case KeyAppointments:
			err = clearCollection(tx, &tx.appointments, key)
		case KeyClients:
			err = clearCollection(tx, &tx.clients, key)
		case KeyTreatments:
			err = clearCollection(tx, &tx.treatments, key)
		case KeyPosts:
			err = clearCollection(tx, &tx.posts, key)
		default:
			err = fmt.Errorf("unknown collection %q", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func get[T any](tx *Tx, c *collection[T], key string) ([]T, error) {
	if !c.loaded {
		items, version, err := load[T](tx.ctx, tx.repo, key)
		if err != nil {
			return nil, err
		}
		c.key, c.items, c.version, c.loaded = key, items, version, true
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, nil
}

func set[T any](tx *Tx, c *collection[T], key string, items []T) error {
	// Loading first pins the version the write is checked against.
	if _, err := get(tx, c, key); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	c.items, c.dirty, c.deleted = items, true, false
	return nil
}

func clearCollection[T any](tx *Tx, c *collection[T], key string) error {
	if _, err := get(tx, c, key); err != nil {
		return err
	}
	c.items, c.dirty, c.deleted = []T{}, true, true
	return nil
}

func (tx *Tx) writes() ([]recordstore.Write, error) {
	var out []recordstore.Write
	for _, w := range []func() (recordstore.Write, bool, error){
		tx.appointments.write, tx.clients.write, tx.treatments.write, tx.posts.write,
	} {
		write, ok, err := w()
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, write)
		}
	}
	return out, nil
}

func (c *collection[T]) write() (recordstore.Write, bool, error) {
	if !c.dirty {
		return recordstore.Write{}, false, nil
	}
	if c.deleted {
		return recordstore.Write{Key: c.key, Version: c.version, Delete: true}, true, nil
	}
	data, err := json.Marshal(c.items)
	if err != nil {
		return recordstore.Write{}, false, fmt.Errorf("encode %s: %w", c.key, err)
	}
	return recordstore.Write{Key: c.key, Data: data, Version: c.version}, true, nil
}
