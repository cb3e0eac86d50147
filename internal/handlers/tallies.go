package handlers

import (
	"blogapi/internal/models"

	"gorm.io/gorm"
)

// interactionTallies batch-counts interactions grouped by type for the given
// targets. column is the interaction column referencing the target kind,
// "post_id" or "comment_id". Every requested id gets an entry, empty targets
// included, so listings always carry an interactions object.
func interactionTallies(gdb *gorm.DB, column string, ids []uint) (map[uint]map[string]int64, error) {
	tallies := make(map[uint]map[string]int64, len(ids))
	for _, id := range ids {
		tallies[id] = map[string]int64{}
	}
	if len(ids) == 0 {
		return tallies, nil
	}

	type tallyRow struct {
		TargetID uint
		Type     string
		Count    int64
	}
	var rows []tallyRow
	err := gdb.Model(&models.Interaction{}).
		Select(column+" AS target_id, type, COUNT(*) AS count").
		Where(column+" IN ?", ids).
		Group(column + ", type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		tallies[r.TargetID][r.Type] = r.Count
	}
	return tallies, nil
}
