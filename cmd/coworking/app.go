package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"coworking/internal/api"
	"coworking/internal/auth"
	"coworking/internal/cache"
	"coworking/internal/config"
	"coworking/internal/controller"
	"coworking/internal/domain"
	"coworking/internal/events"
	"coworking/internal/format"
	"coworking/internal/metrics"
	"coworking/internal/payment"
	"coworking/internal/receipt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var errUsage = errors.New("usage")

// app wires the stores and controllers for one CLI invocation.
type app struct {
	cfg    *config.Config
	logger *zerolog.Logger
	out    io.Writer
	in     *bufio.Reader

	bus       *events.EventBus
	roomStore domain.RoomStore
	formatter format.Formatter
	printer   *receipt.FilePrinter

	rooms    *controller.RoomManagementController
	bookings *controller.BookingManagementController
	creation *controller.BookingCreationController
}

func newApp(cfg *config.Config, logger *zerolog.Logger, redisClient *redis.Client, in io.Reader, out io.Writer) *app {
	metrics.Register()

	client := api.NewClient(cfg.API, auth.FromConfig(cfg.Auth), logger)
	client.UseCache(newCache(redisClient, cfg.App.Name, logger), cfg.CacheTTL())

	roomStore := api.NewRoomStore(client)
	bookingStore := api.NewBookingStore(client)

	bus := events.NewEventBus()
	subscribeNotifications(bus, logger, out)

	formatter := format.New(cfg.Display.DateLayout, cfg.Display.TimeLayout)
	printer := receipt.NewFilePrinter(cfg.Exports.Path, logger)
	reader := bufio.NewReader(in)

	return &app{
		cfg:       cfg,
		logger:    logger,
		out:       out,
		in:        reader,
		bus:       bus,
		roomStore: roomStore,
		formatter: formatter,
		printer:   printer,
		rooms:     controller.NewRoomManagementController(roomStore, bus, logger),
		bookings: controller.NewBookingManagementController(bookingStore, &promptConfirmer{in: reader, out: out}, controller.BookingManagementOptions{
			Events:    bus,
			Formatter: formatter,
			NoticeTTL: cfg.NoticeTTL(),
			Logger:    logger,
		}),
		creation: controller.NewBookingCreationController(bookingStore, payment.NewSimulator(cfg.PaymentDelay(), logger), controller.BookingCreationOptions{
			Events:  bus,
			Printer: printer,
			Logger:  logger,
		}),
	}
}

// newCache prefers Redis with an in-memory fallback.
func newCache(redisClient *redis.Client, prefix string, logger *zerolog.Logger) domain.Cache {
	memory := cache.NewMemoryCache()
	if redisClient == nil {
		return memory
	}
	return cache.NewFailoverCache(cache.NewRedisCache(redisClient, prefix+":"), memory, logger)
}

func subscribeNotifications(bus *events.EventBus, logger *zerolog.Logger, out io.Writer) {
	bus.Subscribe(events.EventBookingPaid, func(e *events.Event) error {
		var p events.BookingEventPayload
		if err := e.Decode(&p); err != nil {
			return err
		}
		logger.Info().Str("client", p.ClientFullName).Str("room", p.RoomType).Msg("Booking completed")
		fmt.Fprintf(out, "Booking for %s on %s is complete.\n", p.ClientFullName, p.Date)
		return nil
	})
	for _, t := range []string{events.EventRoomCreated, events.EventRoomUpdated, events.EventRoomDeleted, events.EventBookingCreated, events.EventBookingDeleted} {
		eventType := t
		bus.Subscribe(eventType, func(e *events.Event) error {
			logger.Debug().Str("event", eventType).RawJSON("payload", e.Payload).Msg("event")
			return nil
		})
	}
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "rooms":
		return a.cmdRooms(ctx)
	case "add-room":
		return a.cmdAddRoom(ctx, rest)
	case "edit-room":
		return a.cmdEditRoom(ctx, rest)
	case "delete-room":
		return a.cmdDeleteRoom(ctx, rest)
	case "bookings":
		return a.cmdBookings(ctx)
	case "delete-booking":
		return a.cmdDeleteBooking(ctx, rest)
	case "export-bookings":
		return a.cmdExportBookings(ctx, rest)
	case "book":
		return a.cmdBook(ctx, rest)
	case "watch":
		return a.cmdWatch(ctx, rest)
	case "help", "-h", "--help":
		printUsage(a.out)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: coworking <command> [args]

Commands:
  rooms                                       list rooms
  add-room <type> <price> [photo]             create a room
  edit-room <id> [-type T] [-price P] [-photo F]
                                              change only the given fields
  delete-room <id>                            delete a room (asks for confirmation)
  bookings                                    list bookings
  delete-booking <id>                         delete a booking (asks for confirmation)
  export-bookings [file]                      export bookings to xlsx
  book <roomId> <name> <date> <start> <end> [on-site|online] [bankIdentifier]
                                              book a room, print the receipt and pay
  watch [seconds]                             refresh periodically and serve /metrics
`)
}
