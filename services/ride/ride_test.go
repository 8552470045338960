package ride

import (
	"context"
	"errors"
	"testing"
	"time"

	ledgerRepo "rideshare/database/repository/ledger"
	"rideshare/database/store"
	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

var dan = models.Identity{Name: "Dan", Email: "dan@example.com", Mobile: "0123456789"}

func newService(t *testing.T) (*DefaultRideService, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	clock := utils.NewFakeClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	return NewDefaultRideService(ledgerRepo.NewStoreLedgerRepo(mem), clock, zap.NewNop()), mem
}

func input() models.RideInput {
	return models.RideInput{
		Vehicle:       "Toyota Corolla",
		Type:          "Sedan",
		Seats:         2,
		Price:         100,
		DepartureTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Pickup:        "X",
		Destination:   "Y",
	}
}

func TestCreateRide(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	r, err := svc.CreateRide(ctx, dan, input())
	if err != nil {
		t.Fatalf("CreateRide: %v", err)
	}
	if r.ID == "" || r.Status != models.RideActive || r.TotalSeats != 2 || r.DriverEmail != dan.Email {
		t.Fatalf("ride = %+v", r)
	}
	got, err := svc.GetRide(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRide: %v", err)
	}
	if got.Driver != "Dan" || !got.CreatedAt.Equal(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("stored ride = %+v", got)
	}

	other, err := svc.CreateRide(ctx, dan, input())
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == r.ID {
		t.Fatal("rides share an id")
	}
}

func TestCreateRideValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.RideInput)
	}{
		{"zero seats", func(in *models.RideInput) { in.Seats = 0 }},
		{"negative price", func(in *models.RideInput) { in.Price = -1 }},
		{"no pickup", func(in *models.RideInput) { in.Pickup = "  " }},
		{"no destination", func(in *models.RideInput) { in.Destination = "" }},
		{"no vehicle", func(in *models.RideInput) { in.Vehicle = "" }},
		{"no departure", func(in *models.RideInput) { in.DepartureTime = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			in := input()
			tt.modify(&in)
			if _, err := svc.CreateRide(context.Background(), dan, in); !errors.Is(err, utils.ErrValidation) {
				t.Fatalf("CreateRide err = %v, want validation", err)
			}
			all, _ := svc.AllRides(context.Background())
			if len(all) != 0 {
				t.Fatalf("invalid ride was stored: %v", all)
			}
		})
	}
}

func TestCancelRideAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	r, err := svc.CreateRide(ctx, dan, input())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.CancelRide(ctx, r.ID, "eve@example.com"); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("CancelRide by stranger err = %v", err)
	}
	if err := svc.CancelRide(ctx, "missing", dan.Email); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("CancelRide missing err = %v", err)
	}
	if err := svc.CancelRide(ctx, r.ID, dan.Email); err != nil {
		t.Fatalf("CancelRide: %v", err)
	}
	if _, err := svc.GetRide(ctx, r.ID); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("GetRide after cancel err = %v", err)
	}
}

func TestCreateRideStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(t)
	mem.FailWrites = errors.New("store down")
	if _, err := svc.CreateRide(ctx, dan, input()); err == nil {
		t.Fatal("CreateRide succeeded with failing store")
	}
	mem.FailWrites = nil
	all, _ := svc.AllRides(ctx)
	if len(all) != 0 {
		t.Fatalf("rides = %v, want none", all)
	}
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	mine, _ := svc.CreateRide(ctx, dan, input())
	eve := models.Identity{Name: "Eve", Email: "eve@example.com"}
	theirs, _ := svc.CreateRide(ctx, eve, input())

	if err := svc.Ledger.Update(ctx, func(s *ledgerRepo.Snapshot) error {
		r := s.FindRide(theirs.ID)
		r.Seats, r.Status = 0, models.RideBooked
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	bookable, _ := svc.ListBookable(ctx)
	if len(bookable) != 1 || bookable[0].ID != mine.ID {
		t.Fatalf("ListBookable = %v", bookable)
	}
	active, _ := svc.ListActiveRidesFor(ctx, eve.Email)
	if len(active) != 0 {
		t.Fatalf("ListActiveRidesFor(eve) = %v, want none", active)
	}
	active, _ = svc.ListActiveRidesFor(ctx, dan.Email)
	if len(active) != 1 {
		t.Fatalf("ListActiveRidesFor(dan) = %v", active)
	}
}
