package appointment

type SlotStatus struct {
	Slot      string `json:"hora"`
	Available bool   `json:"disponible"`
}

// EmployeeAvailability is the per-employee answer: either a reason why the
// whole day is closed, or the list of free slots.
type EmployeeAvailability struct {
	Available bool         `json:"disponible"`
	Message   string       `json:"mensaje,omitempty"`
	Slots     []SlotStatus `json:"horarios"`
}

type EmployeeAvailabilityEntry struct {
	EmployeeID   uint   `json:"empleado_id"`
	EmployeeName string `json:"empleado_nombre"`
	EmployeeAvailability
}

// AggregateAvailability reports the union of free slots over all active
// employees, plus the per-employee breakdown so a caller can route an
// "any employee" booking to a concrete one.
type AggregateAvailability struct {
	Available      bool                        `json:"disponible"`
	Message        string                      `json:"mensaje,omitempty"`
	AvailableSlots []string                    `json:"horarios_disponibles"`
	PerEmployee    []EmployeeAvailabilityEntry `json:"por_empleado"`
}
