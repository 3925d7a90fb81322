package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Snowflake hands out time-ordered 64-bit IDs. The file store uses them to
// name temporary part files so concurrent writers never share a temp name.
type Snowflake struct {
	node *snowflake.Node
}

var setEpoch sync.Once

// randomNode picks a node number that fits snowflake.NodeBits.
func randomNode() (int64, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint16(b[:])) & (1<<snowflake.NodeBits - 1), nil
}

func NewSnowflake() (*Snowflake, error) {
	setEpoch.Do(func() {
		snowflake.Epoch = 1764522000000 // 2025-12-01T00:00:00+07:00
	})

	nodeID, err := randomNode()
	if err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
