package domain

// Gain adds one scheduler tick worth of energy.
func (c *EnergyComponent) Gain() {
	c.Energy += c.Speed
}

// CanAct reports whether the actor has accumulated enough energy to act.
func (c *EnergyComponent) CanAct() bool {
	return c.Energy >= ActionThreshold
}

// Spend pays for exactly one action.
func (c *EnergyComponent) Spend() {
	c.Energy -= ActionThreshold
}
