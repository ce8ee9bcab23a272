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

package metrics

// Label names shared across planfeed metrics. Centralized so queries and
// dashboards never diverge from the emitting code.
const (
	LabelRegion       = "region"
	LabelPurchaseMode = "purchase_mode"
	LabelApplication  = "application"
	LabelStatus       = "status"
	LabelStage        = "stage"
)

// Purchase-mode label values for CatalogEntries.
const (
	PurchaseModeOnDemand = "ondemand"
	PurchaseModeReserved = "reserved"
	PurchaseModePrivate  = "private"
)
