package types

// DefaultQueuePrefix is the capacity-scheduler namespace that marks a
// property as belonging to the queue hierarchy.
const DefaultQueuePrefix = "yarn.scheduler.capacity.root."

// Sheet names written by the two pipelines.
const (
	SheetCapacityQueues = "Capacity Queue Properties"
	SheetGeneral        = "General Properties"
	SheetQueueResources = "Queue Resources"
	SheetUsers          = "Users"
	SheetQueues         = "Queues"
)

// QueueOrder selects the row order of the Queues sheet.
type QueueOrder string

const (
	// OrderBottomUp emits nested queues before the queue that contains them.
	// This is the order existing reports use.
	OrderBottomUp QueueOrder = "bottom-up"

	// OrderTopDown emits each queue before its children (pre-order).
	OrderTopDown QueueOrder = "top-down"
)

// OutputFormat identifies the serialization of a workbook.
type OutputFormat string

const (
	FormatXLSX   OutputFormat = "xlsx"
	FormatYAML   OutputFormat = "yaml"
	FormatJSON   OutputFormat = "json"
	FormatSQLite OutputFormat = "sqlite"
)

// CapacityConfig holds settings for the flat property (capacity scheduler) pipeline.
type CapacityConfig struct {
	// QueuePrefix is the substring that classifies a property as queue-scoped.
	QueuePrefix string `json:"queue_prefix" yaml:"queue_prefix" mapstructure:"queue_prefix"`

	// QueueSheet names the sheet holding the sorted queue-scoped properties.
	QueueSheet string `json:"queue_sheet" yaml:"queue_sheet" mapstructure:"queue_sheet"`

	// GeneralSheet names the sheet holding every other property.
	GeneralSheet string `json:"general_sheet" yaml:"general_sheet" mapstructure:"general_sheet"`
}

// FairConfig holds settings for the nested queue tree (fair scheduler) pipeline.
type FairConfig struct {
	// Totals appends a synthetic "Total" row to the Queue Resources sheet.
	Totals bool `json:"totals" yaml:"totals" mapstructure:"totals"`

	// QueueOrder controls the row order of the Queues sheet (default bottom-up).
	QueueOrder QueueOrder `json:"queue_order" yaml:"queue_order" mapstructure:"queue_order"`
}

// OutputConfig holds settings shared by every workbook writer.
type OutputConfig struct {
	// Format forces an output format. Empty means infer from the file extension.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups the settings of all pipelines.
type Config struct {
	Capacity CapacityConfig `json:"capacity" yaml:"capacity" mapstructure:"capacity"`
	Fair     FairConfig     `json:"fair" yaml:"fair" mapstructure:"fair"`
	Output   OutputConfig   `json:"output" yaml:"output" mapstructure:"output"`
}

// DefaultConfig returns the settings used when no config file or flag overrides them.
func DefaultConfig() Config {
	return Config{
		Capacity: CapacityConfig{
			QueuePrefix:  DefaultQueuePrefix,
			QueueSheet:   SheetCapacityQueues,
			GeneralSheet: SheetGeneral,
		},
		Fair: FairConfig{
			QueueOrder: OrderBottomUp,
		},
	}
}

// WithDefaults fills zero-valued fields of c from DefaultConfig.
func (c CapacityConfig) WithDefaults() CapacityConfig {
	d := DefaultConfig().Capacity
	if c.QueuePrefix == "" {
		c.QueuePrefix = d.QueuePrefix
	}
	if c.QueueSheet == "" {
		c.QueueSheet = d.QueueSheet
	}
	if c.GeneralSheet == "" {
		c.GeneralSheet = d.GeneralSheet
	}
	return c
}
