package evm

// Test-only accessors for the gas-metering bracket, which has no
// production entry point (see startCostMetering).

func (l *Loader) StartCostMetering(identifier string) {
	l.startCostMetering(identifier)
}

func (l *Loader) EndCostMetering() {
	l.endCostMetering()
}

func (l *Loader) GasMeteringIDs() []string {
	return l.meteredGasIDs()
}
