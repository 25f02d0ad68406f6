package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RecipientSource yields the back-office addresses copied on new bookings.
type RecipientSource interface {
	NotificationEmails(ctx context.Context) ([]string, error)
}

// Dispatcher turns reservation messages into mail for the guest and the
// configured notification list.
type Dispatcher struct {
	mailer     Mailer
	recipients RecipientSource
	log        *zap.Logger
}

func NewDispatcher(mailer Mailer, recipients RecipientSource, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		mailer:     mailer,
		recipients: recipients,
		log:        log.With(zap.String("component", "dispatcher")),
	}
}

func (d *Dispatcher) Handle(ctx context.Context, body []byte) error {
	var msg ReservationCreated
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}
	if msg.Type != ReservationCreatedType {
		d.log.Warn("Ignoring unknown message type", zap.String("type", msg.Type))
		return nil
	}

	if err := d.mailer.Send(ctx, []string{msg.Email}, guestSubject(msg), guestBody(msg)); err != nil {
		return fmt.Errorf("mail guest: %w", err)
	}

	admins, err := d.recipients.NotificationEmails(ctx)
	if err != nil {
		return fmt.Errorf("load notification list: %w", err)
	}
	if len(admins) > 0 {
		if err := d.mailer.Send(ctx, admins, adminSubject(msg), adminBody(msg)); err != nil {
			return fmt.Errorf("mail notification list: %w", err)
		}
	}

	d.log.Info("Reservation notifications sent",
		zap.String("reservation_id", msg.ReservationID),
		zap.Int("admin_recipients", len(admins)),
	)
	return nil
}

func guestSubject(msg ReservationCreated) string {
	return fmt.Sprintf("【ご予約確認】%s", msg.EventTitle)
}

func guestBody(msg ReservationCreated) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s 様\n\n", msg.Name)
	b.WriteString("茶会のご予約を承りました。\n\n")
	fmt.Fprintf(&b, "茶会: %s\n", msg.EventTitle)
	fmt.Fprintf(&b, "日付: %s\n", msg.EventDate)
	fmt.Fprintf(&b, "席: %s\n", msg.SeatTime)
	fmt.Fprintf(&b, "人数: %d名\n\n", msg.Guests)
	fmt.Fprintf(&b, "予約番号: %s\n", msg.ReservationID)
	fmt.Fprintf(&b, "確認用パスワード: %s\n\n", msg.Password)
	b.WriteString("ご予約の確認・変更・取消には、このメールアドレスと確認用パスワードをお使いください。\n")
	return b.String()
}

func adminSubject(msg ReservationCreated) string {
	return fmt.Sprintf("【新規予約】%s %s %d名", msg.EventTitle, msg.SeatTime, msg.Guests)
}

// adminBody never includes the recovery password.
func adminBody(msg ReservationCreated) string {
	var b strings.Builder
	fmt.Fprintf(&b, "茶会: %s (%s)\n", msg.EventTitle, msg.EventDate)
	fmt.Fprintf(&b, "席: %s\n", msg.SeatTime)
	fmt.Fprintf(&b, "お名前: %s\n", msg.Name)
	fmt.Fprintf(&b, "メール: %s\n", msg.Email)
	fmt.Fprintf(&b, "人数: %d名\n", msg.Guests)
	fmt.Fprintf(&b, "予約番号: %s\n", msg.ReservationID)
	return b.String()
}
