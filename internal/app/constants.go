package app

// MinPlayersToStartGame defines the minimum number of seats a match is built for.
const MinPlayersToStartGame = 1
