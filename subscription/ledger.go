package subscription

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/models"
)

var ErrTypeNotFound = errors.New("subscription type not found")

// Ledger is the append-only record of premium periods. Each row stores
// only a period end date; the user's current end date is the greatest
// end date across their rows.
type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// Period is one ledger entry with its start date reconstructed as
// end minus one month; stacked periods therefore always appear
// contiguous.
type Period struct {
	TypeID    uint      `json:"typeId"`
	TypeName  string    `json:"typeName"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Extend appends one month of premium for userID. The month is added
// on top of the current end date when it lies in the future, so paid
// time already bought is never lost; otherwise it starts from now.
func (l *Ledger) Extend(userID, typeID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var subType models.SubscriptionType
		if err := tx.First(&subType, typeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTypeNotFound
			}
			return err
		}

		base := l.now()
		var latest models.Subscription
		err := tx.Where("user_id = ?", userID).Order("date DESC").First(&latest).Error
		switch {
		case err == nil:
			if latest.Date.After(base) {
				base = latest.Date
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		sub = models.Subscription{UserID: userID, TypeID: typeID, Date: AddMonth(base)}
		return tx.Create(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// IsActive reports whether the user's greatest end date is strictly in
// the future.
func (l *Ledger) IsActive(userID uint) (bool, error) {
	var latest models.Subscription
	err := l.db.Where("user_id = ?", userID).Order("date DESC").First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return latest.Date.After(l.now()), nil
}

// ListPeriods returns the user's ledger newest first.
func (l *Ledger) ListPeriods(userID uint) ([]Period, error) {
	var subs []models.Subscription
	err := l.db.Preload("SubscriptionType").
		Where("user_id = ?", userID).Order("date DESC").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	periods := make([]Period, 0, len(subs))
	for _, s := range subs {
		periods = append(periods, Period{
			TypeID:    s.TypeID,
			TypeName:  s.SubscriptionType.Name,
			StartDate: subMonth(s.Date),
			EndDate:   s.Date,
		})
	}
	return periods, nil
}

// AddMonth adds one calendar month, clamping to the last day of the
// target month: Jan 31 + 1 month = Feb 28 (29 in leap years).
func AddMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	if last := daysIn(y, m+1, t.Location()); d > last {
		d = last
	}
	return time.Date(y, m+1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func subMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	if last := daysIn(y, m-1, t.Location()); d > last {
		d = last
	}
	return time.Date(y, m-1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn relies on time.Date normalizing day 0 of month m+1 to the
// last day of month m.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
