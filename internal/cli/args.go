package cli

import (
	"fmt"
	"strconv"
)

func parseWorkItemID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid work item id %q", arg)
	}
	return id, nil
}
