package repositories

import (
	"context"
	"strings"

	"github.com/SalahTracker/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// PostgresStore maps the per-user partition onto the tables in schema.sql.
type PostgresStore struct {
	db *goqu.Database
}

func NewPostgresStore(db *goqu.Database) *PostgresStore {
	return &PostgresStore{db: db}
}

type reminderRow struct {
	Push_Token string  `db:"push_token"`
	User_ID    string  `db:"user_id"`
	Platform   string  `db:"platform"`
	Latitude   float64 `db:"latitude"`
	Longitude  float64 `db:"longitude"`
	Prayers    string  `db:"prayers"`
}

func (s *PostgresStore) GetPrayerLogs(ctx context.Context, uid string) (models.PrayerLogs, error) {
	var rows []models.PrayerLogRow
	err := s.db.From("prayer_log").
		Where(goqu.C("user_id").Eq(uid)).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, unavailable("get logs", err)
	}

	logs := make(models.PrayerLogs)
	for _, r := range rows {
		day, ok := logs[r.Log_Date]
		if !ok {
			day = make(models.DailyLog)
			logs[r.Log_Date] = day
		}
		day[r.Prayer_Name] = models.PrayerStatus(r.Status)
	}
	return logs, nil
}

func (s *PostgresStore) GetDailyLog(ctx context.Context, uid string, date string) (models.DailyLog, error) {
	var rows []models.PrayerLogRow
	err := s.db.From("prayer_log").
		Where(goqu.C("user_id").Eq(uid), goqu.C("log_date").Eq(date)).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, unavailable("get daily log", err)
	}

	day := make(models.DailyLog)
	for _, r := range rows {
		day[r.Prayer_Name] = models.PrayerStatus(r.Status)
	}
	return day, nil
}

func (s *PostgresStore) SetPrayerStatus(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus) error {
	row := models.PrayerLogRow{
		User_ID:     uid,
		Log_Date:    date,
		Prayer_Name: prayer,
		Status:      string(status),
	}
	_, err := s.db.Insert("prayer_log").
		Rows(row).
		OnConflict(goqu.DoUpdate("user_id, log_date, prayer_name", goqu.Record{"status": goqu.L("EXCLUDED.status")})).
		Executor().ExecContext(ctx)
	if err != nil {
		return unavailable("set prayer status", err)
	}
	return nil
}

// RecordPrayer upserts the log row and increments both counters in one transaction.
func (s *PostgresStore) RecordPrayer(ctx context.Context, uid string, date string, prayer string, status models.PrayerStatus, points int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, unavailable("begin record prayer tx", err)
	}

	var after int
	err = tx.Wrap(func() error {
		row := models.PrayerLogRow{
			User_ID:     uid,
			Log_Date:    date,
			Prayer_Name: prayer,
			Status:      string(status),
		}
		_, err := tx.Insert("prayer_log").
			Rows(row).
			OnConflict(goqu.DoUpdate("user_id, log_date, prayer_name", goqu.Record{"status": goqu.L("EXCLUDED.status")})).
			Executor().ExecContext(ctx)
		if err != nil || points <= 0 {
			return err
		}

		_, err = tx.Insert("user_progress").
			Rows(goqu.Record{"user_id": uid, "reward_points": points, "xp_points": points}).
			OnConflict(goqu.DoUpdate("user_id", goqu.Record{
				"reward_points": goqu.L(`"user_progress"."reward_points" + ?`, points),
				"xp_points":     goqu.L(`"user_progress"."xp_points" + ?`, points),
			})).
			Returning("xp_points").
			Executor().ScanValContext(ctx, &after)
		return err
	})
	if err != nil {
		return 0, unavailable("record prayer", err)
	}
	if points <= 0 {
		return 0, nil
	}
	return after - points, nil
}

func (s *PostgresStore) getProgressColumn(ctx context.Context, uid string, column string) (int, error) {
	var value int
	_, err := s.db.From("user_progress").
		Select(column).
		Where(goqu.C("user_id").Eq(uid)).
		ScanValContext(ctx, &value)
	if err != nil {
		return 0, unavailable("get "+column, err)
	}
	return value, nil
}

func (s *PostgresStore) setProgressColumn(ctx context.Context, uid string, column string, value int) error {
	_, err := s.db.Insert("user_progress").
		Rows(goqu.Record{"user_id": uid, column: value}).
		OnConflict(goqu.DoUpdate("user_id", goqu.Record{column: value})).
		Executor().ExecContext(ctx)
	if err != nil {
		return unavailable("set "+column, err)
	}
	return nil
}

func (s *PostgresStore) GetRewardPoints(ctx context.Context, uid string) (int, error) {
	return s.getProgressColumn(ctx, uid, "reward_points")
}

func (s *PostgresStore) SetRewardPoints(ctx context.Context, uid string, points int) error {
	return s.setProgressColumn(ctx, uid, "reward_points", points)
}

func (s *PostgresStore) GetXP(ctx context.Context, uid string) (int, error) {
	return s.getProgressColumn(ctx, uid, "xp_points")
}

func (s *PostgresStore) SetXP(ctx context.Context, uid string, xp int) error {
	return s.setProgressColumn(ctx, uid, "xp_points", xp)
}

func (s *PostgresStore) GetGoodDeedCycle(ctx context.Context, uid string) (int, error) {
	return s.getProgressColumn(ctx, uid, "good_deed_cycle")
}

func (s *PostgresStore) SetGoodDeedCycle(ctx context.Context, uid string, cycle int) error {
	return s.setProgressColumn(ctx, uid, "good_deed_cycle", cycle)
}

func (s *PostgresStore) GetGoodDeeds(ctx context.Context, uid string) ([]models.GoodDeedEntry, error) {
	var rows []models.GoodDeedEntryRow
	err := s.db.From("good_deed").
		Where(goqu.C("user_id").Eq(uid)).
		Order(goqu.C("position").Asc()).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, unavailable("get good deeds", err)
	}

	entries := make([]models.GoodDeedEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.GoodDeedEntry{
			Index:      r.Deed_Index,
			Completed:  r.Completed,
			Reflection: r.Reflection,
		})
	}
	return entries, nil
}

func writeDeck(ctx context.Context, tx *goqu.TxDatabase, uid string, entries []models.GoodDeedEntry) error {
	if _, err := tx.Delete("good_deed").Where(goqu.C("user_id").Eq(uid)).Executor().ExecContext(ctx); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, models.GoodDeedEntryRow{
			User_ID:    uid,
			Position:   i,
			Deed_Index: e.Index,
			Completed:  e.Completed,
			Reflection: e.Reflection,
		})
	}
	_, err := tx.Insert("good_deed").Rows(rows...).Executor().ExecContext(ctx)
	return err
}

// SetGoodDeeds replaces the whole deck in one transaction.
func (s *PostgresStore) SetGoodDeeds(ctx context.Context, uid string, entries []models.GoodDeedEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return unavailable("begin good deeds tx", err)
	}

	err = tx.Wrap(func() error {
		return writeDeck(ctx, tx, uid, entries)
	})
	if err != nil {
		return unavailable("set good deeds", err)
	}
	return nil
}

// ResetGoodDeeds replaces the deck and bumps the cycle column in one transaction.
func (s *PostgresStore) ResetGoodDeeds(ctx context.Context, uid string, entries []models.GoodDeedEntry, cycle int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return unavailable("begin good deed reset tx", err)
	}

	err = tx.Wrap(func() error {
		if err := writeDeck(ctx, tx, uid, entries); err != nil {
			return err
		}
		_, err := tx.Insert("user_progress").
			Rows(goqu.Record{"user_id": uid, "good_deed_cycle": cycle}).
			OnConflict(goqu.DoUpdate("user_id", goqu.Record{"good_deed_cycle": cycle})).
			Executor().ExecContext(ctx)
		return err
	})
	if err != nil {
		return unavailable("reset good deeds", err)
	}
	return nil
}

func (s *PostgresStore) GetQuranProgress(ctx context.Context, uid string, trackKey string) (models.QuranProgress, error) {
	var row models.QuranProgressRow
	found, err := s.db.From("quran_progress").
		Where(goqu.C("user_id").Eq(uid), goqu.C("track_key").Eq(trackKey)).
		ScanStructContext(ctx, &row)
	if err != nil {
		return models.QuranProgress{}, unavailable("get quran progress", err)
	}
	if !found {
		return models.QuranProgress{}, nil
	}
	return models.QuranProgress{PositionSeconds: row.Position_Seconds, XP: row.Xp}, nil
}

func (s *PostgresStore) SetQuranProgress(ctx context.Context, uid string, trackKey string, progress models.QuranProgress) error {
	row := models.QuranProgressRow{
		User_ID:          uid,
		Track_Key:        trackKey,
		Position_Seconds: progress.PositionSeconds,
		Xp:               progress.XP,
	}
	_, err := s.db.Insert("quran_progress").
		Rows(row).
		OnConflict(goqu.DoUpdate("user_id, track_key", goqu.Record{
			"position_seconds": goqu.L("EXCLUDED.position_seconds"),
			"xp":               goqu.L("EXCLUDED.xp"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return unavailable("set quran progress", err)
	}
	return nil
}

func (s *PostgresStore) SavePushToken(ctx context.Context, token models.PushToken) error {
	_, err := s.db.Insert("user_push_tokens").
		Rows(goqu.Record{
			"user_id":    token.User_ID,
			"push_token": token.Push_Token,
			"platform":   token.Platform,
		}).
		OnConflict(goqu.DoUpdate("push_token", goqu.Record{
			"user_id":    goqu.L("EXCLUDED.user_id"),
			"platform":   goqu.L("EXCLUDED.platform"),
			"updated_at": goqu.L("NOW()"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return unavailable("save push token", err)
	}
	return nil
}

func (s *PostgresStore) GetPushTokens(ctx context.Context, uid string) ([]models.PushToken, error) {
	var tokens []models.PushToken
	err := s.db.From("user_push_tokens").
		Where(goqu.C("user_id").Eq(uid)).
		ScanStructsContext(ctx, &tokens)
	if err != nil {
		return nil, unavailable("get push tokens", err)
	}
	return tokens, nil
}

func (s *PostgresStore) SaveReminder(ctx context.Context, sub models.ReminderSubscription) error {
	row := reminderRow{
		Push_Token: sub.PushToken,
		User_ID:    sub.UID,
		Platform:   sub.Platform,
		Latitude:   sub.Latitude,
		Longitude:  sub.Longitude,
		Prayers:    strings.Join(sub.Prayers, ","),
	}
	_, err := s.db.Insert("reminder_subscription").
		Rows(row).
		OnConflict(goqu.DoUpdate("push_token", goqu.Record{
			"user_id":   goqu.L("EXCLUDED.user_id"),
			"platform":  goqu.L("EXCLUDED.platform"),
			"latitude":  goqu.L("EXCLUDED.latitude"),
			"longitude": goqu.L("EXCLUDED.longitude"),
			"prayers":   goqu.L("EXCLUDED.prayers"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return unavailable("save reminder", err)
	}
	return nil
}

func (s *PostgresStore) ListReminders(ctx context.Context) ([]models.ReminderSubscription, error) {
	var rows []reminderRow
	if err := s.db.From("reminder_subscription").ScanStructsContext(ctx, &rows); err != nil {
		return nil, unavailable("list reminders", err)
	}

	subs := make([]models.ReminderSubscription, 0, len(rows))
	for _, r := range rows {
		var prayers []string
		if r.Prayers != "" {
			prayers = strings.Split(r.Prayers, ",")
		}
		subs = append(subs, models.ReminderSubscription{
			UID:       r.User_ID,
			PushToken: r.Push_Token,
			Platform:  r.Platform,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Prayers:   prayers,
		})
	}
	return subs, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user models.UserProfile) error {
	var count int
	_, err := s.db.From("user_profile").
		Select(goqu.COUNT("*")).
		Where(goqu.Func("LOWER", goqu.C("email")).Eq(strings.ToLower(user.Email))).
		ScanValContext(ctx, &count)
	if err != nil {
		return unavailable("check email", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}

	_, err = s.db.Insert("user_profile").Rows(user).Executor().ExecContext(ctx)
	if err != nil {
		return unavailable("create user", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	return s.getUser(ctx, goqu.Func("LOWER", goqu.C("email")).Eq(strings.ToLower(email)))
}

func (s *PostgresStore) GetUserByID(ctx context.Context, uid string) (models.UserProfile, error) {
	return s.getUser(ctx, goqu.C("user_id").Eq(uid))
}

func (s *PostgresStore) getUser(ctx context.Context, where exp.Expression) (models.UserProfile, error) {
	var user models.UserProfile
	found, err := s.db.From("user_profile").Where(where).ScanStructContext(ctx, &user)
	if err != nil {
		return models.UserProfile{}, unavailable("get user", err)
	}
	if !found {
		return models.UserProfile{}, ErrNotFound
	}
	return user, nil
}
