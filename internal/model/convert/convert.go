// Package convert maps between core lineups and their database rows
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/lineup-tools/nadeconv/internal/geo"
	"github.com/lineup-tools/nadeconv/internal/model"
	"github.com/lineup-tools/nadeconv/pkg/core"
	"gorm.io/datatypes"
)

// CoreToLineup converts a parsed lineup of mapName to a row of run runID
func CoreToLineup(runID uint, mapName string, l core.Lineup) model.Lineup {
	return model.Lineup{
		RunID:        runID,
		Map:          mapName,
		FromSpot:     l.From,
		ToSpot:       l.To,
		Description:  l.Description,
		Weapon:       l.Weapon,
		Position:     geo.PointFromPosition(l.Position),
		Yaw:          l.Yaw,
		Pitch:        l.Pitch,
		Duck:         l.Duck,
		Strength:     l.Strength,
		Jump:         l.Jump,
		RunTicks:     uint32(l.Run),
		RunYaw:       l.RunYaw,
		RunSpeed:     l.RunSpeed,
		RecoveryYaw:  l.RecoveryYaw,
		RecoveryJump: l.RecoveryJump,
		DelayTicks:   uint32(l.Delay),
	}
}

// LineupToCore converts a stored row back to a core lineup
func LineupToCore(l model.Lineup) core.Lineup {
	return core.Lineup{
		From:         l.FromSpot,
		To:           l.ToSpot,
		Description:  l.Description,
		Weapon:       l.Weapon,
		Position:     geo.PositionFromPoint(l.Position),
		Yaw:          l.Yaw,
		Pitch:        l.Pitch,
		Duck:         l.Duck,
		Strength:     l.Strength,
		Jump:         l.Jump,
		Run:          core.Ticks(l.RunTicks),
		RunYaw:       l.RunYaw,
		RunSpeed:     l.RunSpeed,
		RecoveryYaw:  l.RecoveryYaw,
		RecoveryJump: l.RecoveryJump,
		Delay:        core.Ticks(l.DelayTicks),
	}
}

// CoreToDocument converts an output document to a row. The body is stored as JSON.
func CoreToDocument(runID uint, format core.Format, doc core.Document) (model.Document, error) {
	body, err := json.Marshal(doc.Body)
	if err != nil {
		return model.Document{}, fmt.Errorf("marshal %s document %s: %w", format, doc.Path, err)
	}
	return model.Document{
		RunID:  runID,
		Format: string(format),
		Map:    doc.Map,
		Path:   doc.Path,
		Count:  doc.Count,
		Body:   datatypes.JSON(body),
	}, nil
}

// TallyToRejections converts a rejection tally to rows, one per message.
// Rows are ordered like Tally.String.
func TallyToRejections(runID uint, format core.Format, t core.Tally) []model.Rejection {
	rows := make([]model.Rejection, 0, len(t))
	for _, msg := range t.Messages() {
		rows = append(rows, model.Rejection{
			RunID:   runID,
			Format:  string(format),
			Message: msg,
			Count:   t[msg],
		})
	}
	return rows
}
