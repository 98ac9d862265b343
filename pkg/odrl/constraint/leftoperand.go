package constraint

// LeftOperand is the closed ODRL left-operand vocabulary. Only the six
// "specials" named in spec.md §4.3 (DateTime, ElapsedTime, TimeInterval,
// MeteredTime, TimeWindow — resolved from world-supplied clocks/counters —
// plus everything else, which resolves via direct lookup in the state
// world's string map) get bespoke resolution logic; the remaining entries
// exist so ingestion can validate and round-trip the full ODRL vocabulary
// (original_source/src/model/constraint_left_operand.rs).
type LeftOperand string

const (
	AbsolutePosition         LeftOperand = "absolutePosition"
	AbsoluteSize             LeftOperand = "absoluteSize"
	Count                    LeftOperand = "count"
	DateTime                 LeftOperand = "dateTime"
	DelayPeriod              LeftOperand = "delayPeriod"
	DeliveryChannel          LeftOperand = "deliveryChannel"
	Device                   LeftOperand = "device"
	ElapsedTime              LeftOperand = "elapsedTime"
	Event                    LeftOperand = "event"
	FileFormat               LeftOperand = "fileFormat"
	Industry                 LeftOperand = "industry"
	Language                 LeftOperand = "language"
	Media                    LeftOperand = "media"
	MeteredTime              LeftOperand = "meteredTime"
	PayAmount                LeftOperand = "payAmount"
	Percentage               LeftOperand = "percentage"
	Product                  LeftOperand = "product"
	Purpose                  LeftOperand = "purpose"
	Recipient                LeftOperand = "recipient"
	RelativePosition         LeftOperand = "relativePosition"
	RelativeSize             LeftOperand = "relativeSize"
	RelativeSpatialPosition  LeftOperand = "relativeSpatialPosition"
	RelativeTemporalPosition LeftOperand = "relativeTemporalPosition"
	Resolution               LeftOperand = "resolution"
	Spatial                  LeftOperand = "spatial"
	SpatialCoordinates       LeftOperand = "spatialCoordinates"
	System                   LeftOperand = "system"
	SystemDevice             LeftOperand = "systemDevice"
	TimeInterval             LeftOperand = "timeInterval"
	TimeWindow               LeftOperand = "timeWindow"
	UnitOfCount              LeftOperand = "unitOfCount"
	Version                  LeftOperand = "version"
	VirtualLocation          LeftOperand = "virtualLocation"
)

// IsSpecial reports whether left is one of the five operands the constraint
// engine resolves itself (from clocks/counters) rather than looking up in
// the state world's state map.
func (l LeftOperand) IsSpecial() bool {
	switch l {
	case DateTime, ElapsedTime, TimeInterval, MeteredTime, TimeWindow:
		return true
	default:
		return false
	}
}
