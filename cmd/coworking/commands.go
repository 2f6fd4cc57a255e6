package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"coworking/internal/controller"
	"coworking/internal/models"
)

// promptConfirmer asks yes/no questions on the terminal.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (c *promptConfirmer) Confirm(_ context.Context, prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func parseID(args []string, name string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%w: %s is required", errUsage, name)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", errUsage, name, args[0])
	}
	return id, nil
}

func readPhoto(path string) (*models.Photo, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return &models.Photo{FileName: filepath.Base(path), Data: data}, nil
}

// report prints the operator-facing message for err and returns it.
func (a *app) report(err error) error {
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", controller.UserMessage(err))
	}
	return err
}

func (a *app) printRooms(rooms []models.Room) {
	if len(rooms) == 0 {
		fmt.Fprintln(a.out, "No rooms.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tPRICE/HOUR\tPHOTO")
	for _, r := range rooms {
		photo := "-"
		if r.Photo != "" {
			photo = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.RoomType, r.PricePerHour.StringFixed(2), photo)
	}
	_ = tw.Flush()
}

func (a *app) cmdRooms(ctx context.Context) error {
	if _, err := a.rooms.ListRooms(ctx); err != nil {
		return a.report(err)
	}
	a.printRooms(a.rooms.View().Rooms)
	return nil
}

func (a *app) cmdAddRoom(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: add-room needs <type> <price>", errUsage)
	}
	draft := models.RoomDraft{RoomType: args[0], PricePerHour: args[1]}
	if len(args) > 2 {
		photo, err := readPhoto(args[2])
		if err != nil {
			return err
		}
		draft.Photo = photo
	}

	a.rooms.OpenAddForm()
	if err := a.rooms.SubmitAdd(ctx, draft); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Room %q created.\n", draft.RoomType)
	a.printRooms(a.rooms.View().Rooms)
	return nil
}

func (a *app) cmdEditRoom(ctx context.Context, args []string) error {
	id, err := parseID(args, "room id")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("edit-room", flag.ContinueOnError)
	fs.SetOutput(a.out)
	roomType := fs.String("type", "", "new room type")
	price := fs.String("price", "", "new price per hour")
	photoPath := fs.String("photo", "", "new photo file")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	room, err := a.findRoom(ctx, id)
	if err != nil {
		return err
	}
	photo, err := readPhoto(*photoPath)
	if err != nil {
		return err
	}

	a.rooms.OpenEdit(room)
	if err := a.rooms.SubmitEdit(ctx, id, models.RoomDraft{RoomType: *roomType, PricePerHour: *price, Photo: photo}); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Room %d updated.\n", id)
	a.printRooms(a.rooms.View().Rooms)
	return nil
}

func (a *app) findRoom(ctx context.Context, id int64) (models.Room, error) {
	rooms, err := a.rooms.ListRooms(ctx)
	if err != nil {
		return models.Room{}, a.report(err)
	}
	for _, r := range rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Room{}, fmt.Errorf("room %d not found", id)
}

func (a *app) cmdDeleteRoom(ctx context.Context, args []string) error {
	id, err := parseID(args, "room id")
	if err != nil {
		return err
	}
	room, err := a.findRoom(ctx, id)
	if err != nil {
		return err
	}

	a.rooms.RequestDelete(room)
	confirmer := &promptConfirmer{in: a.in, out: a.out}
	if !confirmer.Confirm(ctx, fmt.Sprintf("Delete room #%d (%s)?", room.ID, room.RoomType)) {
		a.rooms.CancelDelete()
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.rooms.ConfirmDelete(ctx); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Room %d deleted.\n", id)
	a.printRooms(a.rooms.View().Rooms)
	return nil
}

func (a *app) printBookings() {
	v := a.bookings.View()
	if v.LoadError != "" {
		fmt.Fprintf(a.out, "Error: %s\nRun the command again to retry.\n", v.LoadError)
		return
	}
	if v.Notice != nil {
		fmt.Fprintln(a.out, v.Notice.Text)
	}
	if len(v.Rows) == 0 {
		fmt.Fprintln(a.out, "No bookings.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTART\tEND\tCLIENT\tCODE\tROOM")
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n", r.ID, r.Date, r.Start, r.End, r.ClientFullName, r.ConfirmationCode, r.RoomID)
	}
	_ = tw.Flush()
}

func (a *app) cmdBookings(ctx context.Context) error {
	err := a.bookings.ListBookings(ctx)
	a.printBookings()
	return err
}

func (a *app) cmdDeleteBooking(ctx context.Context, args []string) error {
	id, err := parseID(args, "booking id")
	if err != nil {
		return err
	}
	if err := a.bookings.ListBookings(ctx); err != nil {
		a.printBookings()
		return err
	}

	switch err := a.bookings.DeleteBooking(ctx, id); {
	case errors.Is(err, controller.ErrNotConfirmed):
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	case err != nil:
		if n := a.bookings.Notice(); n != nil {
			fmt.Fprintln(a.out, n.Text)
		}
		return err
	}
	a.printBookings()
	return nil
}

func (a *app) cmdExportBookings(ctx context.Context, args []string) error {
	path := filepath.Join(a.cfg.Exports.Path, fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405")))
	if len(args) > 0 {
		path = args[0]
	}
	if err := a.bookings.ListBookings(ctx); err != nil {
		a.printBookings()
		return err
	}
	if err := a.bookings.Export(path); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("%w: book needs <roomId> <name> <date> <start> <end>", errUsage)
	}
	roomID, err := parseID(args, "room id")
	if err != nil {
		return err
	}
	method := models.PaymentOnSite
	if len(args) > 5 {
		method = models.PaymentMethod(args[5])
	}
	bank := ""
	if len(args) > 6 {
		bank = args[6]
	}

	rooms, err := a.roomStore.ListRooms(ctx)
	if err != nil {
		return a.report(err)
	}

	if err := a.creation.Open(rooms); err != nil {
		return err
	}
	defer a.creation.Close()

	_ = a.creation.UpdateDraft(func(d *models.BookingDraft) {
		d.SelectedRoomID = roomID
		d.ClientFullName = args[1]
		d.Date = args[2]
		d.HeureDebut = args[3]
		d.HeureFin = args[4]
		d.PaymentMethod = method
		d.BankIdentifier = bank
	})

	if err := a.creation.Submit(ctx); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, a.creation.Confirmation())
	if rec, ok := a.creation.ReceiptView(); ok {
		fmt.Fprintln(a.out, rec.Text)
	}
	if err := a.creation.Print(ctx); err == nil {
		fmt.Fprintf(a.out, "Receipt saved to %s\n", a.printer.LastPath())
	}

	result, err := a.creation.Pay(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, result.Outcome.Message)
	fmt.Fprintln(a.out, result.Receipt.Text)
	return nil
}

func (a *app) cmdWatch(ctx context.Context, args []string) error {
	interval := 30 * time.Second
	if len(args) > 0 {
		secs, err := strconv.Atoi(args[0])
		if err != nil || secs <= 0 {
			return fmt.Errorf("%w: invalid interval %q", errUsage, args[0])
		}
		interval = time.Duration(secs) * time.Second
	}

	if a.cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(ctx, a.cfg.Monitoring.PrometheusPort, a.logger)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		a.refresh(ctx)
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("watch stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (a *app) refresh(ctx context.Context) {
	rooms, roomErr := a.rooms.ListRooms(ctx)
	bookingErr := a.bookings.ListBookings(ctx)

	event := a.logger.Info()
	if roomErr != nil || bookingErr != nil {
		event = a.logger.Warn().AnErr("rooms_error", roomErr).AnErr("bookings_error", bookingErr)
	}
	event.Int("rooms", len(rooms)).Int("bookings", len(a.bookings.View().Rows)).Msg("refreshed")
}
