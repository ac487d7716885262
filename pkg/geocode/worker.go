// Package geocode resolves coordinates for restaurants that were created
// without them.
package geocode

import (
	"Dish-Discovery/pkg/restaurant"
	"context"
	"errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
	"sync"
)

const (
	BatchSize      = 50
	WorkerPoolSize = 4
)

type Worker struct {
	restaurantRepository restaurant.RestaurantRepository
	geocoder             Geocoder

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

func NewWorker(restaurantRepository restaurant.RestaurantRepository, geocoder Geocoder) *Worker {
	return &Worker{
		restaurantRepository: restaurantRepository,
		geocoder:             geocoder,
	}
}

// Start schedules RunOnce on a cron spec such as "@every 1m".
func (w *Worker) Start(spec string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cron != nil {
		w.cron.Stop()
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, w.job); err != nil {
		return err
	}
	c.Start()
	w.cron = c
	log.Infof("geocoding worker scheduled (%s, batch %d)", spec, BatchSize)
	return nil
}

func (w *Worker) Stop() {
	w.mu.Lock()
	c := w.cron
	w.cron = nil
	w.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// job skips a tick while the previous batch is still running.
func (w *Worker) job() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	resolved, failed, err := w.RunOnce(context.Background())
	if err != nil {
		log.Errorf("geocoding batch failed: %v", err)
		return
	}
	if resolved+failed > 0 {
		log.Infof("geocoding batch done: %d resolved, %d failed", resolved, failed)
	}
}

// RunOnce geocodes one batch of PENDING restaurants. A restaurant whose
// lookup fails for good is marked FAILED and not retried; transient
// failures leave it PENDING for the next batch.
func (w *Worker) RunOnce(ctx context.Context) (resolved int, failed int, err error) {
	pending, err := w.restaurantRepository.GetPendingGeocode(ctx, BatchSize)
	if err != nil {
		return 0, 0, err
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, WorkerPoolSize)
	)
	for _, r := range pending {
		wg.Add(1)
		semaphore <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-semaphore }()

			lat, lng, err := w.geocoder.Geocode(ctx, Address(r.Name, r.Address, r.City, r.Country))
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if errors.Is(err, ErrTransient) {
				log.Warnf("geocoding deferred for restaurant %s (%s): %v", r.ID, r.Name, err)
				return
			}
			if err != nil {
				log.Warnf("geocoding failed for restaurant %s (%s): %v", r.ID, r.Name, err)
				if err := w.restaurantRepository.MarkGeocodeFailed(ctx, r.ID); err != nil {
					log.Errorf("failed to mark restaurant %s: %v", r.ID, err)
					return
				}
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			if err := w.restaurantRepository.UpdateCoordinates(ctx, r.ID, lat, lng); err != nil {
				log.Errorf("failed to update restaurant %s: %v", r.ID, err)
				return
			}
			mu.Lock()
			resolved++
			mu.Unlock()
		}()
	}
	wg.Wait()

	return resolved, failed, nil
}
