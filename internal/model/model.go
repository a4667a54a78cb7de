package model

import (
	"database/sql"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []any{
	&Run{},
	&Lineup{},
	&Document{},
	&Rejection{},
}

// Run is one invocation of the converter over a source document
type Run struct {
	gorm.Model
	Source     string       `json:"source" gorm:"size:255"`
	StartedAt  time.Time    `json:"startedAt" gorm:"index:idx_run_started_at"`
	FinishedAt sql.NullTime `json:"finishedAt"`
	Maps       int          `json:"maps"`
	Lineups    int          `json:"lineups"` // source lineups that passed parsing
}

func (*Run) TableName() string {
	return "runs"
}

// Lineup is a parsed source lineup.
// Position is stored as a WKB PointZ.
type Lineup struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	RunID        uint       `json:"runId" gorm:"index:idx_lineup_run_id"`
	Run          Run        `json:"-" gorm:"foreignkey:RunID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Map          string     `json:"map" gorm:"size:64;index:idx_lineup_map"`
	FromSpot     string     `json:"from" gorm:"size:128"`
	ToSpot       string     `json:"to" gorm:"size:128"`
	Description  string     `json:"description" gorm:"size:255"`
	Weapon       string     `json:"weapon" gorm:"size:32;index:idx_lineup_weapon"`
	Position     geom.Point `json:"position" gorm:"type:bytes"`
	Yaw          float64    `json:"yaw"`
	Pitch        float64    `json:"pitch"`
	Duck         bool       `json:"duck"`
	Strength     float64    `json:"strength"`
	Jump         bool       `json:"jump"`
	RunTicks     uint32     `json:"runTicks"`
	RunYaw       float64    `json:"runYaw"`
	RunSpeed     bool       `json:"runSpeed"`
	RecoveryYaw  float64    `json:"recoveryYaw"`
	RecoveryJump bool       `json:"recoveryJump"`
	DelayTicks   uint32     `json:"delayTicks"`
}

func (*Lineup) TableName() string {
	return "lineups"
}

// Document is a converted output document
type Document struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"createdAt"`
	RunID     uint           `json:"runId" gorm:"index:idx_document_run_id"`
	Run       Run            `json:"-" gorm:"foreignkey:RunID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Format    string         `json:"format" gorm:"size:16;index:idx_document_format"`
	Map       string         `json:"map" gorm:"size:64"` // empty for documents spanning several maps
	Path      string         `json:"path" gorm:"size:255"`
	Count     int            `json:"count"`
	Body      datatypes.JSON `json:"body"`
}

func (*Document) TableName() string {
	return "documents"
}

// Rejection counts lineups a format could not convert, by reason message
type Rejection struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	RunID   uint   `json:"runId" gorm:"index:idx_rejection_run_id"`
	Run     Run    `json:"-" gorm:"foreignkey:RunID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Format  string `json:"format" gorm:"size:16"`
	Message string `json:"message" gorm:"size:255"`
	Count   int    `json:"count"`
}

func (*Rejection) TableName() string {
	return "rejections"
}
