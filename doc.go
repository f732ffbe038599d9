// Package affinity decides where the records of a partitioned key-value store
// live, collocating records whose relaxation-attribute values are similar.
//
// The active domain of a relaxation attribute (for example a diagnosis) is split
// into clusters with a greedy head-splitting procedure driven by a similarity
// table and a threshold alpha. Each cluster becomes one partition, so a query
// relaxing a value to its similar values touches a single partition. A derived
// record of an entity (for example a person's info record) follows the
// partition of the entity's first primary record.
//
// # Quick Start
//
// Basic usage with the built-in MeSH sample:
//
//	import (
//	    "github.com/arloliu/affinity"
//	    "github.com/arloliu/affinity/source"
//	)
//
//	cfg := affinity.DefaultConfig()
//	placement, err := affinity.New(ctx, &cfg, source.NewMeSH())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	key := affinity.PrimaryKey("person-1", "Cough")
//	partition, err := placement.Route(&key)
//	table, err := placement.Assign(ctx, []string{"node-0", "node-1"})
//
// # Store Hooks
//
// A store integrates through three calls:
//
//   - PartitionCount: number of partitions (one per cluster)
//   - Route: key to partition id
//   - Assign: partition ids and a node snapshot to hosting nodes
//
// # Key Features
//
//   - Similarity Clustering: alpha controls how tight clusters are; higher alpha, more partitions
//   - Deterministic: the same domain order, table and alpha always yield the same clustering
//   - Collocation: BindPrimary and DerivedKey keep an entity's derived record with its first primary record
//   - Pluggable Sources: static, MeSH sample, files (.gz/.zst), NATS JetStream KV, SQL
//   - Pluggable Assigners: modulo (default), consistent hash, rendezvous
//
// # Advanced Usage
//
// Custom assigner and hooks:
//
//	import (
//	    "github.com/arloliu/affinity"
//	    "github.com/arloliu/affinity/strategy"
//	)
//
//	assigner := strategy.NewConsistentHash(
//	    strategy.WithVirtualNodes(300),
//	)
//
//	hooks := &affinity.Hooks{
//	    OnAssignmentChanged: func(ctx context.Context, table map[int][]string) error {
//	        // Apply the partition table
//	        return nil
//	    },
//	}
//
//	placement, err := affinity.New(ctx, &cfg, src,
//	    affinity.WithAssigner(assigner),
//	    affinity.WithHooks(hooks),
//	)
//
// See the examples/ directory for complete working examples.
package affinity
