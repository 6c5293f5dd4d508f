package screen

// StatusMsg updates the header's player badge. Screens emit it whenever the
// active profile changes or its coin balance moves.
type StatusMsg struct {
	// Player is the avatar plus display name shown top right, empty to hide.
	Player string

	// Coins is the balance shown next to the player.
	Coins int
}
