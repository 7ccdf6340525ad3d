package mda

// Partition is the allocation role of a tagged record.
type Partition int

const (
	Normal Partition = iota
	StoreCommon
	LocationCommon
)

func (p Partition) String() string {
	switch p {
	case StoreCommon:
		return "store-common"
	case LocationCommon:
		return "location-common"
	default:
		return "normal"
	}
}

// PartitionOf classifies a location tag. Anything but the two common labels
// is a normal department location.
func (a AllocationConfig) PartitionOf(location string) Partition {
	switch location {
	case a.StoreCommon:
		return StoreCommon
	case a.LocationCommon:
		return LocationCommon
	default:
		return Normal
	}
}

// Partitions holds the three disjoint parts of the tagged records, each in
// input order.
type Partitions struct {
	StoreCommon    []Tagged
	LocationCommon []Tagged
	Normal         []Tagged
}

// Len returns the total number of records in the partitions.
func (p Partitions) Len() int { return len(p.StoreCommon) + len(p.LocationCommon) + len(p.Normal) }

// Split distributes every tagged record into exactly one partition.
func Split(records []Tagged, cfg AllocationConfig) Partitions {
	var p Partitions
	for _, r := range records {
		switch cfg.PartitionOf(r.Location) {
		case StoreCommon:
			p.StoreCommon = append(p.StoreCommon, r)
		case LocationCommon:
			p.LocationCommon = append(p.LocationCommon, r)
		default:
			p.Normal = append(p.Normal, r)
		}
	}
	return p
}
