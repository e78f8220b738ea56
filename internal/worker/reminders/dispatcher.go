package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

const defaultCronSpec = "* * * * *"

// Config настройки диспетчера напоминаний
type Config struct {
	LeadMinutes int            // за сколько минут до начала записи напоминать
	CronSpec    string         // расписание тиков, по умолчанию раз в минуту
	Location    *time.Location // таймзона, в которой живут даты записей
	TickTimeout time.Duration  // таймаут обработки одного тика
}

// Dispatcher отправляет клиентам WhatsApp-напоминания о предстоящих записях.
// Раз в минуту ищет подтверждённые записи, начинающиеся в ближайшие LeadMinutes,
// и помечает их после успешной отправки. Окно, а не точная минута: пропущенный
// тик (рестарт, таймаут) не теряет напоминания - неотмеченные записи
// подхватываются следующим тиком.
type Dispatcher struct {
	cfg          Config
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	sender       MessageSender
	timeProvider TimeProvider
	logger       Logger

	cron *cron.Cron
}

func NewDispatcher(
	cfg Config,
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	sender MessageSender,
	timeProvider TimeProvider,
	logger Logger,
) *Dispatcher {
	if cfg.CronSpec == "" {
		cfg.CronSpec = defaultCronSpec
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.TickTimeout == 0 {
		cfg.TickTimeout = 30 * time.Second
	}

	return &Dispatcher{
		cfg:          cfg,
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		sender:       sender,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Start запускает cron-расписание
func (d *Dispatcher) Start() error {
	d.cron = cron.New(cron.WithLocation(d.cfg.Location))

	_, err := d.cron.AddFunc(d.cfg.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.TickTimeout)
		defer cancel()

		if err := d.Tick(ctx); err != nil {
			d.logger.Error("Reminders: tick failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("reminders: failed to schedule %q: %w", d.cfg.CronSpec, err)
	}

	d.cron.Start()
	d.logger.Info("Reminders: dispatcher started (lead=%dm, spec=%q)", d.cfg.LeadMinutes, d.cfg.CronSpec)
	return nil
}

// Stop останавливает расписание и дожидается завершения текущего тика
func (d *Dispatcher) Stop() {
	if d.cron == nil {
		return
	}
	<-d.cron.Stop().Done()
	d.logger.Info("Reminders: dispatcher stopped")
}

// Tick обрабатывает один тик: находит записи, начинающиеся в окне
// (now, now+LeadMinutes], и рассылает напоминания.
// Ошибка отправки одному клиенту не прерывает остальных.
func (d *Dispatcher) Tick(ctx context.Context) error {
	now := d.timeProvider.Now().In(d.cfg.Location)
	target := now.Add(time.Duration(d.cfg.LeadMinutes) * time.Minute)

	fromDate := midnightUTC(now)
	toDate := midnightUTC(target)

	due, err := d.bookingRepo.ListDueReminders(ctx,
		fromDate, types.NewTimeString(now),
		toDate, types.NewTimeString(target),
	)
	if err != nil {
		return fmt.Errorf("reminders: failed to list due bookings: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	d.logger.Info("Reminders: %d booking(s) due before %s %s", len(due), toDate.Format("2006-01-02"), types.NewTimeString(target))

	for _, booking := range due {
		if err := d.remind(ctx, booking, now); err != nil {
			d.logger.Error("Reminders: failed to remind booking id=%d: %v", booking.ID, err)
			continue
		}
	}

	return nil
}

func (d *Dispatcher) remind(ctx context.Context, booking *domain.Booking, now time.Time) error {
	body := d.composeMessage(ctx, booking, startsInMinutes(booking, now))

	if err := d.sender.SendWhatsApp(ctx, booking.CustomerPhone, body); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}

	// Помечаем только после успешной отправки: лучше повторное напоминание, чем пропущенное
	if err := d.bookingRepo.MarkReminderSent(ctx, booking.ID); err != nil {
		return fmt.Errorf("mark sent failed: %w", err)
	}

	d.logger.Info("Reminders: sent reminder for booking id=%d to %s", booking.ID, booking.CustomerPhone)
	return nil
}

func (d *Dispatcher) composeMessage(ctx context.Context, booking *domain.Booking, minutes int) string {
	businessName := ""
	if business, err := d.businessRepo.GetByID(ctx, booking.BusinessID); err == nil {
		businessName = business.Name
	} else {
		d.logger.Warn("Reminders: failed to get business id=%d: %v", booking.BusinessID, err)
	}

	at := fmt.Sprintf("%s-%s", booking.StartTime, booking.EndTime)

	if businessName != "" {
		if booking.ServiceName != nil {
			return fmt.Sprintf("Reminder: %s at %s starts in %d minutes (%s). Your booking reference is %s.",
				*booking.ServiceName, businessName, minutes, at, booking.Reference)
		}
		return fmt.Sprintf("Reminder: your booking at %s starts in %d minutes (%s). Your booking reference is %s.",
			businessName, minutes, at, booking.Reference)
	}
	return fmt.Sprintf("Reminder: your booking starts in %d minutes (%s). Your booking reference is %s.",
		minutes, at, booking.Reference)
}

// startsInMinutes считает минуты до начала записи по настенным часам
// (дата записи хранится как полночь UTC, время - как HH:MM)
func startsInMinutes(booking *domain.Booking, now time.Time) int {
	days := int(booking.Date.Sub(midnightUTC(now)).Hours() / 24)
	return days*24*60 + booking.StartTime.Minutes() - (now.Hour()*60 + now.Minute())
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
