// Command tests seeds the configured store with demo users and rides.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"rideshare/config"
	"rideshare/database/repository"
	"rideshare/database/store"
	"rideshare/models"
	"rideshare/services/booking"
	"rideshare/services/notification"
	"rideshare/services/ride"
	"rideshare/services/user"
	"rideshare/utils"

	"go.uber.org/zap"
)

var (
	places   = []string{"Central Station", "Airport", "Old Town", "University", "Harbor", "Tech Park"}
	vehicles = []struct{ Name, Type string }{
		{"Toyota Corolla", "Sedan"},
		{"Honda CR-V", "SUV"},
		{"VW Transporter", "Van"},
		{"Suzuki Swift", "Hatchback"},
	}
	demoUsers = []models.RegistrationRequest{
		{Name: "Dana Driver", Email: "dana@example.com", Mobile: "5550000001"},
		{Name: "Eli Driver", Email: "eli@example.com", Mobile: "5550000002"},
		{Name: "Rae Rider", Email: "rae@example.com", Mobile: "5550000003"},
		{Name: "Sam Rider", Email: "sam@example.com", Mobile: "5550000004"},
	}
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	config.LoadConfig(flags)
	utils.InitializeLogger()
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := store.Open(ctx)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close(context.Background())

	repos := repository.NewRepositories(s)
	users, ledger, notifications := repos.Users, repos.Ledger, repos.Notifications

	clock := utils.RealClock()
	userSvc := user.NewDefaultUserService(users, clock, logger)
	notifySvc := notification.NewDefaultNotificationService(users, notifications, &notification.StoreOutbox{Repo: notifications}, nil, clock, logger)
	rideSvc := ride.NewDefaultRideService(ledger, clock, logger)
	bookingSvc := booking.NewDefaultBookingService(ledger, notifySvc, clock, logger)

	identities := make([]models.Identity, 0, len(demoUsers))
	for _, req := range demoUsers {
		req.Password, req.ConfirmPassword = "password", "password"
		u, err := userSvc.Register(ctx, req)
		switch {
		case errors.Is(err, utils.ErrDuplicate):
			u, err = userSvc.GetProfile(ctx, req.Email)
			if err != nil {
				log.Fatalf("Failed to load %s: %v", req.Email, err)
			}
		case err != nil:
			log.Fatalf("Failed to register %s: %v", req.Email, err)
		}
		identities = append(identities, u.Identity())
	}
	drivers, riders := identities[:2], identities[2:]

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().Truncate(time.Hour)
	var created []*models.Ride
	for i := 0; i < 12; i++ {
		from := places[rng.Intn(len(places))]
		to := places[rng.Intn(len(places))]
		for to == from {
			to = places[rng.Intn(len(places))]
		}
		v := vehicles[rng.Intn(len(vehicles))]
		r, err := rideSvc.CreateRide(ctx, drivers[i%len(drivers)], models.RideInput{
			Vehicle:       v.Name,
			Type:          v.Type,
			Seats:         1 + rng.Intn(4),
			Price:         50 + 10*rng.Intn(30),
			DepartureTime: today.Add(time.Duration(2+rng.Intn(72)) * time.Hour),
			Pickup:        from,
			Destination:   to,
		})
		if err != nil {
			log.Fatalf("Failed to create ride: %v", err)
		}
		created = append(created, r)
	}

	booked := 0
	for i, r := range created {
		if i%3 != 0 {
			continue
		}
		if _, err := bookingSvc.BookRide(ctx, r.ID, riders[i%len(riders)]); err != nil {
			logger.Warn("Seed booking failed", zap.String("rideID", r.ID), zap.Error(err))
			continue
		}
		booked++
	}

	fmt.Printf("Seeded %d users, %d rides and %d bookings into the %s store\n",
		len(identities), len(created), booked, config.AppConfig.StoreDriver)
}
