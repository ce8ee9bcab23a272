/*
Copyright 2025 Planfeed Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

// DefaultInstanceTypes is the fallback list of machine types to include in
// the catalog when none are explicitly configured. These cover the common
// general-purpose and compute-optimized sizes.
var DefaultInstanceTypes = []string{
	"m5.large",
	"m5.xlarge",
	"c5.large",
	"c5.xlarge",
	"c5.2xlarge",
}

// DefaultBaselines is the fallback per-application throughput per compute
// unit, one value per application.
var DefaultBaselines = []int64{1000, 500, 2000, 300}

// DefaultOperatingSystem is the OS substring offers must match when none is
// configured.
const DefaultOperatingSystem = "Linux"

// Default catalog quota topology.
const (
	DefaultMaxOnDemandPerType   = 20
	DefaultMaxOnDemandPerRegion = 20
	DefaultMaxReservedPerZone   = 20
	DefaultAvailabilityZones    = 3
)

// DefaultHorizonHours is the fallback demand truncation length: one year of
// hourly values.
const DefaultHorizonHours = 24 * 365
