package services

import "github.com/yukikurage/kanban-board-api/internal/models"

// RemovedTaskKeys returns the task keys present in before but absent from
// after, in order of first appearance in before and without duplicates.
func RemovedTaskKeys(before, after []models.Column) []string {
	kept := make(map[string]struct{})
	for _, column := range after {
		for _, task := range column.Tasks {
			kept[task.Key] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	var removed []string
	for _, column := range before {
		for _, task := range column.Tasks {
			if _, ok := kept[task.Key]; ok {
				continue
			}
			if _, ok := seen[task.Key]; ok {
				continue
			}
			seen[task.Key] = struct{}{}
			removed = append(removed, task.Key)
		}
	}
	return removed
}

func columnTaskKeys(column models.Column) []string {
	keys := make([]string, 0, len(column.Tasks))
	for _, task := range column.Tasks {
		keys = append(keys, task.Key)
	}
	return keys
}
