package strategy

import (
	"fmt"

	"github.com/arloliu/affinity/types"
)

// ErrNoNodes indicates that no nodes were provided for assignment.
var ErrNoNodes = types.ErrNoNodesAvailable

func validate(partitionCount int, nodes []string) error {
	if partitionCount < 0 {
		return fmt.Errorf("%w: %d", types.ErrInvalidPartitionCount, partitionCount)
	}
	if len(nodes) == 0 {
		return ErrNoNodes
	}

	return nil
}
