package storage

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ericogr/vino-arena/internal/battle"
)

// battleStateRow is the persisted form of a battle.StateDoc: one structured
// JSON document per session plus the turn counter used for compare-and-swap.
type battleStateRow struct {
	BattleID   uint `gorm:"primaryKey"`
	TurnNumber int
	Document   []byte `gorm:"type:blob"`
	UpdatedAt  time.Time
}

func (battleStateRow) TableName() string { return "battle_states" }

type sqliteRepository struct {
	db *gorm.DB
	// seedWines are the configured starter templates copied into a new
	// player's cellar.
	seedWines []battle.Wine
	// openBattlesTTL bounds how long a waiting battle stays in the public
	// listing.
	openBattlesTTL time.Duration
}

func NewSQLiteRepository(db *gorm.DB, seedWines []battle.Wine, openBattlesTTL time.Duration) Repository {
	if openBattlesTTL <= 0 {
		openBattlesTTL = 5 * time.Minute
	}
	return &sqliteRepository{db: db, seedWines: seedWines, openBattlesTTL: openBattlesTTL}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- Cellar lookup -----------------------------------------------------

func (r *sqliteRepository) GetWine(id uint) (*battle.Wine, error) {
	var w battle.Wine
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &w, nil
}

func (r *sqliteRepository) GetWinesByIDs(ids []uint) ([]battle.Wine, error) {
	var wines []battle.Wine
	if err := r.db.Where("id IN ?", ids).Find(&wines).Error; err != nil {
		return nil, err
	}
	return wines, nil
}

func (r *sqliteRepository) ListWinesByOwner(email string) ([]battle.Wine, error) {
	var wines []battle.Wine
	if err := r.db.Where("owner_email = ?", email).Order("id").Find(&wines).Error; err != nil {
		return nil, err
	}
	return wines, nil
}

// GrantStarterCellar copies the seed templates to a player with an empty
// cellar. A player who already owns wines keeps their collection untouched.
func (r *sqliteRepository) GrantStarterCellar(email string) error {
	if len(r.seedWines) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&battle.Wine{}).Where("owner_email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		grant := make([]battle.Wine, len(r.seedWines))
		for i, w := range r.seedWines {
			w.Model = gorm.Model{}
			w.OwnerEmail = email
			w.InBattle = false
			grant[i] = w
		}
		return tx.Create(&grant).Error
	})
}

// --- Battle persistence ------------------------------------------------

func (r *sqliteRepository) CreateBattle(b *battle.Battle, st *battle.StateDoc) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		st.BattleID = b.ID
		doc, err := json.Marshal(st)
		if err != nil {
			return err
		}
		return tx.Create(&battleStateRow{
			BattleID:   b.ID,
			TurnNumber: st.TurnNumber,
			Document:   doc,
		}).Error
	})
}

func (r *sqliteRepository) UpdateBattle(b *battle.Battle) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) LoadBattle(id uint) (*battle.Battle, *battle.StateDoc, error) {
	var b battle.Battle
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, nil, notFoundOr(err)
	}
	var row battleStateRow
	if err := r.db.First(&row, "battle_id = ?", id).Error; err != nil {
		return nil, nil, notFoundOr(err)
	}
	var st battle.StateDoc
	if err := json.Unmarshal(row.Document, &st); err != nil {
		return nil, nil, err
	}
	return &b, &st, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*battle.Battle, error) {
	var b battle.Battle
	if err := r.db.Where("join_code = ?", code).First(&b).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &b, nil
}

func (r *sqliteRepository) ListOpenBattles() ([]battle.Battle, error) {
	cutoff := time.Now().Add(-r.openBattlesTTL)
	var battles []battle.Battle
	err := r.db.
		Where("status = ? AND private = ? AND created_at > ?", battle.StatusWaiting, false, cutoff).
		Order("created_at desc").
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

// CommitBattle persists the new state document iff the stored turn number
// still matches the caller's expected turn. A lost race returns ErrConflict;
// the caller must reload and re-validate, never blind-retry.
func (r *sqliteRepository) CommitBattle(b *battle.Battle, st *battle.StateDoc, expectedTurn int) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := casState(tx, b.ID, expectedTurn, st.TurnNumber, doc); err != nil {
			return err
		}
		return tx.Save(b).Error
	})
}

// casState is the shared compare-and-swap write for the state document.
func casState(tx *gorm.DB, battleID uint, expectedTurn, newTurn int, doc []byte) error {
	res := tx.Model(&battleStateRow{}).
		Where("battle_id = ? AND turn_number = ?", battleID, expectedTurn).
		Updates(map[string]interface{}{"turn_number": newTurn, "document": doc})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cnt int64
		if err := tx.Model(&battleStateRow{}).Where("battle_id = ?", battleID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

// --- Roster locking ----------------------------------------------------

func (r *sqliteRepository) CommitWines(ids []uint, owner string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var wines []battle.Wine
		if err := tx.Where("id IN ?", ids).Find(&wines).Error; err != nil {
			return err
		}
		if len(wines) != len(ids) {
			return ErrNotFound
		}
		for i := range wines {
			if wines[i].OwnerEmail != owner {
				return ErrNotFound
			}
			if wines[i].InBattle {
				return ErrWineCommitted
			}
		}
		return tx.Model(&battle.Wine{}).Where("id IN ?", ids).Update("in_battle", true).Error
	})
}

func (r *sqliteRepository) ReleaseWines(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&battle.Wine{}).Where("id IN ?", ids).Update("in_battle", false).Error
}

// --- Settlement and ledger ---------------------------------------------

// SettleBattle applies the whole settlement atomically. StatsSettled guards
// the profile deltas and roster release so a retried settlement never
// double-applies; a failed transaction leaves the session untouched.
func (r *sqliteRepository) SettleBattle(b *battle.Battle, st *battle.StateDoc, expectedTurn int, deltas map[string]battle.OutcomeDelta) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return err
	}
	alreadySettled := b.StatsSettled
	b.StatsSettled = true
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := casState(tx, b.ID, expectedTurn, st.TurnNumber, doc); err != nil {
			return err
		}
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		if alreadySettled {
			return nil
		}
		for email, d := range deltas {
			if err := applyOutcome(tx, email, d); err != nil {
				return err
			}
		}
		released := append(st.Sides[0].WineIDs(), st.Sides[1].WineIDs()...)
		if len(released) == 0 {
			return nil
		}
		return tx.Model(&battle.Wine{}).Where("id IN ?", released).Update("in_battle", false).Error
	})
	if err != nil {
		b.StatsSettled = alreadySettled
	}
	return err
}

func (r *sqliteRepository) ApplyOutcome(email string, d battle.OutcomeDelta) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return applyOutcome(tx, email, d)
	})
}

// applyOutcome upserts the profile and applies one settlement delta. Ratings
// never drop below zero.
func applyOutcome(tx *gorm.DB, email string, d battle.OutcomeDelta) error {
	var p battle.Profile
	if err := tx.Where("email = ?", email).First(&p).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		p = battle.Profile{Email: email}
	}
	p.Experience += d.ExperienceDelta
	p.Rating += d.RatingDelta
	if p.Rating < 0 {
		p.Rating = 0
	}
	p.Wins += d.WinIncrement
	p.Losses += d.LossIncrement
	p.Forfeits += d.ForfeitIncrement
	p.GamesPlayed++
	return tx.Save(&p).Error
}

// --- Profiles -----------------------------------------------------------

func (r *sqliteRepository) UpsertProfile(email, name string) error {
	var p battle.Profile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		p = battle.Profile{Email: email}
	}
	p.Name = name
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) GetProfile(email string) (*battle.Profile, error) {
	var p battle.Profile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &battle.Profile{Email: email}, nil
		}
		return nil, err
	}
	return &p, nil
}

// TopProfiles returns the leaderboard ordered by rating desc, wins desc.
func (r *sqliteRepository) TopProfiles(limit int) ([]battle.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []battle.Profile
	err := r.db.Model(&battle.Profile{}).
		Order("rating DESC").
		Order("wins DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// --- Timeout scanner ----------------------------------------------------

// ClaimTimedOutBattleIDs marks up to limit overdue battles as claimed by
// workerID and returns their ids. A claim expires after claimTTL so a dead
// worker's battles become reclaimable.
func (r *sqliteRepository) ClaimTimedOutBattleIDs(now time.Time, limit int, claimTTL time.Duration, workerID string) ([]uint, error) {
	if limit <= 0 {
		limit = 20
	}
	var ids []uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var battles []battle.Battle
		err := tx.Model(&battle.Battle{}).
			Where("status = ? AND action_deadline > ? AND action_deadline <= ?", battle.StatusInProgress, time.Time{}, now).
			Where("claimed_by = '' OR claimed_by IS NULL OR claim_expires_at <= ?", now).
			Limit(limit).
			Find(&battles).Error
		if err != nil {
			return err
		}
		for i := range battles {
			ids = append(ids, battles[i].ID)
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&battle.Battle{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{"claimed_by": workerID, "claim_expires_at": now.Add(claimTTL)}).Error
	})
	return ids, err
}
