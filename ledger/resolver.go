package ledger

// =============================================================================
// RELATIONSHIPS - Lookup maps derived from one snapshot
// =============================================================================

// Relationships holds the lookup maps the aggregator needs to attribute
// payments and expenses to properties. Built fresh per report request;
// never cached across snapshots.
//
// Unresolved references are simply absent entries. Downstream consumers
// must treat an unresolved property as "exclude this record from
// per-property totals", never as an error.
type Relationships struct {
	// UnitProperty maps unit_id -> property_id.
	UnitProperty map[string]string

	// LeaseProperty maps lease_id -> property_id, through the lease's unit.
	LeaseProperty map[string]string

	// Maintenance maps request_id -> request, for expense attribution.
	Maintenance map[string]MaintenanceRequest
}

// Resolve builds the relationship maps from a snapshot.
// Pure, O(units + leases + requests).
func Resolve(snap *Snapshot) Relationships {
	rel := Relationships{
		UnitProperty:  make(map[string]string, len(snap.Units)),
		LeaseProperty: make(map[string]string, len(snap.Leases)),
		Maintenance:   make(map[string]MaintenanceRequest, len(snap.MaintenanceRequests)),
	}

	for _, u := range snap.Units {
		if u.ID != "" && u.PropertyID != "" {
			rel.UnitProperty[u.ID] = u.PropertyID
		}
	}

	for _, l := range snap.Leases {
		if l.ID == "" {
			continue
		}
		if propertyID, ok := rel.UnitProperty[l.UnitID]; ok {
			rel.LeaseProperty[l.ID] = propertyID
		}
	}

	for _, m := range snap.MaintenanceRequests {
		if m.ID != "" {
			rel.Maintenance[m.ID] = m
		}
	}

	return rel
}

// PropertyForLease resolves the property a lease belongs to.
func (r Relationships) PropertyForLease(leaseID string) (string, bool) {
	propertyID, ok := r.LeaseProperty[leaseID]
	return propertyID, ok
}

// PropertyForExpense resolves the property an expense belongs to.
// The expense's own property_id wins when present; otherwise the chain
// maintenance_request -> unit -> property is followed.
func (r Relationships) PropertyForExpense(e Expense) (string, bool) {
	if e.PropertyID != "" {
		return e.PropertyID, true
	}
	if e.MaintenanceRequestID == "" {
		return "", false
	}
	req, ok := r.Maintenance[e.MaintenanceRequestID]
	if !ok {
		return "", false
	}
	propertyID, ok := r.UnitProperty[req.UnitID]
	return propertyID, ok
}
