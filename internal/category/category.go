// Package category declares the closed set of voiceline categories.
//
// The table order is the canonical order: validation walks categories in
// this order, and every generated artifact emits categories in this order.
// The set is part of the artifact contract and is not configurable.
package category

// Category describes one voiceline category.
type Category struct {
	// Key is the top-level key in the voiceline database (e.g. "hitlines").
	Key string

	// Label is the human-readable name shown by listings.
	Label string

	// EnumTag is the speech type constant in the generated lookup module.
	EnumTag string

	// Prefix is the required id prefix; ids look like "<Prefix>_<n>".
	Prefix string
}

var table = [...]Category{
	{Key: "idlelines", Label: "idle", EnumTag: "IDLE", Prefix: "climp_idle"},
	{Key: "hitlines", Label: "hit", EnumTag: "HIT", Prefix: "climp_hit"},
	{Key: "taskstartlines", Label: "task start", EnumTag: "TASK_START", Prefix: "climp_task_start"},
	{Key: "taskcompletelines", Label: "task complete", EnumTag: "TASK_COMPLETE", Prefix: "climp_task_complete"},
	{Key: "taskfailedunreachable", Label: "task failed (unreachable)", EnumTag: "TASK_FAILED_UNREACHABLE", Prefix: "climp_task_failed_unreachable"},
	{Key: "taskfailedtargetremoved", Label: "task failed (target removed)", EnumTag: "TASK_FAILED_TARGET_REMOVED", Prefix: "climp_task_failed_target_removed"},
}

// All returns the categories in canonical order.
// The returned slice is a copy; callers may not mutate the table.
func All() []Category {
	out := make([]Category, len(table))
	copy(out, table[:])
	return out
}

// Lookup returns the category for a database key.
func Lookup(key string) (Category, bool) {
	for _, c := range table {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Keys returns the database keys in canonical order.
func Keys() []string {
	keys := make([]string, len(table))
	for i, c := range table {
		keys[i] = c.Key
	}
	return keys
}

// IDPrefix returns the prefix an id must start with, including the separator.
func (c Category) IDPrefix() string {
	return c.Prefix + "_"
}
