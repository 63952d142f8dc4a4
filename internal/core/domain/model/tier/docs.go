// Package tier models delivery service levels.
//
// A Tier couples a stable business identifier (the key users type and the key
// orders store) with a separate display name, so relabelling a tier never
// changes what the lookup accepts. Tiers live in a closed Catalog that is built
// once at start-up, from the built-in defaults or from a YAML file, and is
// read-only afterwards.
//
// Each tier also describes the vehicle class that serves it. The catalog uses
// those limits to recommend the smallest vehicle that fits a shipment.
package tier
