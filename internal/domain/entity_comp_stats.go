package domain

// TakeDamage applies damage. Returns true if the target died.
func (s *StatsComponent) TakeDamage(amount int) bool {
	if s.IsDead {
		return false
	}

	if amount < 0 {
		amount = 0
	}

	s.HP -= amount

	if s.HP <= 0 {
		s.HP = 0
		s.IsDead = true
		return true
	}
	return false
}

// Heal restores HP up to the maximum. Corpses stay corpses.
func (s *StatsComponent) Heal(amount int) {
	if s.IsDead {
		return
	}
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
}
