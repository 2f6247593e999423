package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// SetNode replaces the generator node, one per running instance.
func SetNode(id int64) error {
	n, err := snowflake.NewNode(id)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// GenID returns a new row id. Ids are positive and grow with time.
func GenID() uint64 {
	return uint64(node.Generate().Int64())
}
