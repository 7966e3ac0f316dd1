/*
Package storagemodels defines the data structures used throughout dictstore.

Key Types:

EntityRecord:
One dictionary entry, scoped to an entity name:

	rec := storagemodels.EntityRecord{
	    EntityName:     "city",
	    Value:          "Mumbai",
	    Variants:       []string{"Mumbai", "mumbai", "bombay"},
	    LanguageScript: "en",
	}.WithSelfVariant()

CRFRecord / CRFData:
Labeled training sentences for sequence-labeling models, stored in the CRF
corpus index. CRFData returns a corpus as parallel sentence/entity-span lists.

Fuzziness:
The edit-distance policy for fuzzy dictionary search. Either fixed or
auto-scaled by token length:

	f, _ := storagemodels.ParseFuzziness("auto:4,7")
	f.Distance(3) // 0
	f.Distance(5) // 1
	f.Distance(9) // 2

IndexOptions / SearchOptions:
Explicit per-operation knobs (timeouts, batch size, result size). Only the
enumerated options are forwarded to the backend.

These types provide a consistent interface across different storage engines.
*/
package storagemodels
