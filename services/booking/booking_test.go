package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	ledgerRepo "rideshare/database/repository/ledger"
	"rideshare/database/store"
	"rideshare/models"
	"rideshare/services/ride"
	"rideshare/services/search"
	"rideshare/utils"

	"go.uber.org/zap"
)

var (
	dan  = models.Identity{Name: "Dan", Email: "dan@example.com", Mobile: "0000000001"}
	ann  = models.Identity{Name: "Ann", Email: "ann@example.com", Mobile: "0000000002"}
	bob  = models.Identity{Name: "Bob", Email: "bob@example.com", Mobile: "0000000003"}
	cara = models.Identity{Name: "Cara", Email: "cara@example.com", Mobile: "0000000004"}

	dayD = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []models.BookingSummary
	to    []string
	err   error
}

func (n *recordingNotifier) NotifyRideOwner(_ context.Context, driverEmail string, summary models.BookingSummary) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.to = append(n.to, driverEmail)
	n.calls = append(n.calls, summary)
	return n.err
}

type fixture struct {
	mem      *store.MemoryStore
	ledger   ledgerRepo.LedgerRepository
	rides    *ride.DefaultRideService
	bookings *DefaultBookingService
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemoryStore()
	ledger := ledgerRepo.NewStoreLedgerRepo(mem)
	clock := utils.NewFakeClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	return &fixture{
		mem:      mem,
		ledger:   ledger,
		rides:    ride.NewDefaultRideService(ledger, clock, zap.NewNop()),
		bookings: NewDefaultBookingService(ledger, notifier, clock, zap.NewNop()),
		notifier: notifier,
	}
}

func (f *fixture) shareRide(t *testing.T, seats int) *models.Ride {
	t.Helper()
	r, err := f.rides.CreateRide(context.Background(), dan, models.RideInput{
		Vehicle:       "Corolla",
		Type:          "Sedan",
		Seats:         seats,
		Price:         100,
		DepartureTime: dayD,
		Pickup:        "X",
		Destination:   "Y",
	})
	if err != nil {
		t.Fatalf("CreateRide: %v", err)
	}
	return r
}

// assertSeatInvariant checks totalSeats - seats == bookings for every ride.
func (f *fixture) assertSeatInvariant(t *testing.T) {
	t.Helper()
	snap, err := f.ledger.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	for _, r := range snap.Rides {
		if got := len(snap.BookingsFor(r.ID)); r.TotalSeats-r.Seats != got {
			t.Fatalf("ride %s: totalSeats %d - seats %d != %d bookings", r.ID, r.TotalSeats, r.Seats, got)
		}
	}
	for _, b := range snap.Bookings {
		if snap.FindRide(b.RideID) == nil {
			t.Fatalf("booking %s references missing ride %s", b.ID, b.RideID)
		}
	}
}

func TestBookUntilSoldOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.shareRide(t, 2)

	for _, who := range []models.Identity{ann, bob} {
		b, err := f.bookings.BookRide(ctx, r.ID, who)
		if err != nil {
			t.Fatalf("BookRide(%s): %v", who.Email, err)
		}
		if b.Status != models.BookingConfirmed || b.UserID != who.Email || b.RideDetails.Pickup != "X" {
			t.Fatalf("booking = %+v", b)
		}
		f.assertSeatInvariant(t)
	}

	got, _ := f.rides.GetRide(ctx, r.ID)
	if got.Seats != 0 || got.Status != models.RideBooked {
		t.Fatalf("ride after two bookings = seats %d status %s", got.Seats, got.Status)
	}

	if _, err := f.bookings.BookRide(ctx, r.ID, cara); !errors.Is(err, utils.ErrSoldOut) {
		t.Fatalf("third BookRide err = %v, want sold out", err)
	}
	snap, _ := f.ledger.Snapshot(ctx)
	if len(snap.Bookings) != 2 || snap.Rides[0].Seats != 0 {
		t.Fatalf("sold out attempt mutated ledger: %+v", snap)
	}

	if len(f.notifier.calls) != 2 || f.notifier.to[0] != dan.Email || f.notifier.calls[1].BookerName != "Bob" {
		t.Fatalf("notifications = %v to %v", f.notifier.calls, f.notifier.to)
	}
}

func TestBookMissingRide(t *testing.T) {
	f := newFixture(t)
	if _, err := f.bookings.BookRide(context.Background(), "nope", ann); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("BookRide err = %v, want not found", err)
	}
	if len(f.notifier.calls) != 0 {
		t.Fatal("notifier called for failed booking")
	}
}

func TestCancelBookingReopensRide(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.shareRide(t, 2)
	first, _ := f.bookings.BookRide(ctx, r.ID, ann)
	if _, err := f.bookings.BookRide(ctx, r.ID, bob); err != nil {
		t.Fatal(err)
	}

	if err := f.bookings.CancelBooking(ctx, first.ID, bob); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("CancelBooking by other rider err = %v", err)
	}
	if err := f.bookings.CancelBooking(ctx, first.ID, ann); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	f.assertSeatInvariant(t)

	got, _ := f.rides.GetRide(ctx, r.ID)
	if got.Seats != 1 || got.Status != models.RideActive {
		t.Fatalf("ride after cancel = seats %d status %s", got.Seats, got.Status)
	}
	history, _ := f.bookings.ListBookingHistoryFor(ctx, bob.Email)
	if len(history) != 1 {
		t.Fatalf("bob history = %v", history)
	}

	if err := f.bookings.CancelBooking(ctx, first.ID, ann); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("second CancelBooking err = %v, want not found", err)
	}
	again, _ := f.rides.GetRide(ctx, r.ID)
	if again.Seats != 1 {
		t.Fatalf("second cancel changed seats to %d", again.Seats)
	}
}

func TestCancelRideRemovesBookings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.shareRide(t, 3)
	keep := f.shareRide(t, 1)
	if _, err := f.bookings.BookRide(ctx, r.ID, ann); err != nil {
		t.Fatal(err)
	}
	if _, err := f.bookings.BookRide(ctx, keep.ID, bob); err != nil {
		t.Fatal(err)
	}

	if err := f.rides.CancelRide(ctx, r.ID, dan.Email); err != nil {
		t.Fatalf("CancelRide: %v", err)
	}
	f.assertSeatInvariant(t)

	snap, _ := f.ledger.Snapshot(ctx)
	if len(snap.Rides) != 1 || len(snap.Bookings) != 1 || snap.Bookings[0].RideID != keep.ID {
		t.Fatalf("after cascade: %+v", snap)
	}
}

func TestSearchExcludesFullyBookedRide(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.shareRide(t, 2)
	q := models.SearchQuery{From: "x", Date: dayD}
	opts := search.DefaultOptions()
	opts.Location = time.UTC

	all, _ := f.rides.AllRides(ctx)
	if got := search.Search(all, q, opts); len(got) != 1 || got[0].ID != r.ID {
		t.Fatalf("search before booking = %v", got)
	}

	for _, who := range []models.Identity{ann, bob} {
		if _, err := f.bookings.BookRide(ctx, r.ID, who); err != nil {
			t.Fatal(err)
		}
	}
	all, _ = f.rides.AllRides(ctx)
	if got := search.Search(all, q, opts); len(got) != 0 {
		t.Fatalf("search after sell out = %v", got)
	}
	if bookable, _ := f.rides.ListBookable(ctx); len(bookable) != 0 {
		t.Fatalf("ListBookable after sell out = %v", bookable)
	}
}

func TestStoreFailureLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.shareRide(t, 2)
	b, err := f.bookings.BookRide(ctx, r.ID, ann)
	if err != nil {
		t.Fatal(err)
	}
	before, _ := f.ledger.Snapshot(ctx)

	f.mem.FailWrites = errors.New("store down")
	if _, err := f.bookings.BookRide(ctx, r.ID, bob); err == nil {
		t.Fatal("BookRide succeeded with failing store")
	}
	if err := f.bookings.CancelBooking(ctx, b.ID, ann); err == nil {
		t.Fatal("CancelBooking succeeded with failing store")
	}
	if err := f.rides.CancelRide(ctx, r.ID, dan.Email); err == nil {
		t.Fatal("CancelRide succeeded with failing store")
	}
	f.mem.FailWrites = nil

	after, _ := f.ledger.Snapshot(ctx)
	if len(after.Rides) != len(before.Rides) || after.Rides[0].Seats != before.Rides[0].Seats || len(after.Bookings) != len(before.Bookings) {
		t.Fatalf("ledger changed: before %+v after %+v", before, after)
	}
	if len(f.notifier.calls) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(f.notifier.calls))
	}
}

func TestNotifierFailureKeepsBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.notifier.err = errors.New("sms gateway down")
	r := f.shareRide(t, 1)

	b, err := f.bookings.BookRide(ctx, r.ID, ann)
	if err != nil {
		t.Fatalf("BookRide: %v", err)
	}
	history, _ := f.bookings.ListBookingHistoryFor(ctx, ann.Email)
	if len(history) != 1 || history[0].Booking.ID != b.ID {
		t.Fatalf("history = %v", history)
	}
}

func TestHistoryAfterRideIsGone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.shareRide(t, 1)
	if _, err := f.bookings.BookRide(ctx, r.ID, ann); err != nil {
		t.Fatal(err)
	}
	// Remove only the ride to simulate data written by older clients.
	if err := f.ledger.Update(ctx, func(s *ledgerRepo.Snapshot) error {
		s.RemoveRide(s.RideIndex(r.ID))
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	history, err := f.bookings.ListBookingHistoryFor(ctx, ann.Email)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Ride != nil || history[0].Booking.RideDetails.Destination != "Y" {
		t.Fatalf("history = %+v", history)
	}
}

func TestListBookingsForRide(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.shareRide(t, 2)
	if _, err := f.bookings.BookRide(ctx, r.ID, ann); err != nil {
		t.Fatal(err)
	}
	got, err := f.bookings.ListBookingsForRide(ctx, r.ID, dan.Email)
	if err != nil || len(got) != 1 || got[0].UserName != "Ann" {
		t.Fatalf("ListBookingsForRide = %v, %v", got, err)
	}
	if _, err := f.bookings.ListBookingsForRide(ctx, r.ID, ann.Email); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("rider listing err = %v", err)
	}
}

func TestConcurrentBookingsNeverOversell(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.shareRide(t, 3)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		booked  int
		soldOut int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			who := models.Identity{Name: "Rider", Email: string(rune('a'+i)) + "@example.com"}
			_, err := f.bookings.BookRide(ctx, r.ID, who)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				booked++
			case errors.Is(err, utils.ErrSoldOut):
				soldOut++
			}
		}(i)
	}
	wg.Wait()

	if booked != 3 || soldOut != 7 {
		t.Fatalf("booked %d sold out %d, want 3 and 7", booked, soldOut)
	}
	f.assertSeatInvariant(t)
}
