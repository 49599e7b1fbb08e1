package constants

const USER_AGENT = "ladderlight/0.1.0 (+https://github.com/grindheim/ladderlight)"
