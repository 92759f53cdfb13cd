package player

// defaultCatalog is the built-in draft board, ordered by rank.
var defaultCatalog = []Player{
	{ID: "p1", Name: "Nikola Jokic", Team: "DEN", Position: PositionCenter, Age: 29, Stats: Stats{PPG: 26.4, RPG: 12.4, APG: 9.0, SPG: 1.4, BPG: 0.9, FG: 58.3, FT: 81.7, TOV: 3.0, GP: 79}, ADP: 1.2, Rank: 1, Trend: TrendSame},
	{ID: "p2", Name: "Luka Doncic", Team: "DAL", Position: PositionPointGuard, Age: 25, Stats: Stats{PPG: 33.9, RPG: 9.2, APG: 9.8, SPG: 1.4, BPG: 0.5, FG: 48.7, FT: 78.6, TOV: 4.0, GP: 70}, ADP: 2.1, Rank: 2, Trend: TrendSame},
	{ID: "p3", Name: "Shai Gilgeous-Alexander", Team: "OKC", Position: PositionPointGuard, Age: 25, Stats: Stats{PPG: 30.1, RPG: 5.5, APG: 6.2, SPG: 2.0, BPG: 0.9, FG: 53.5, FT: 87.4, TOV: 2.2, GP: 75}, ADP: 3.0, Rank: 3, Trend: TrendUp},
	{ID: "p4", Name: "Giannis Antetokounmpo", Team: "MIL", Position: PositionPowerForward, Age: 29, Stats: Stats{PPG: 30.4, RPG: 11.5, APG: 6.5, SPG: 1.2, BPG: 1.1, FG: 61.1, FT: 65.7, TOV: 3.4, GP: 73}, ADP: 3.8, Rank: 4, Trend: TrendSame},
	{ID: "p5", Name: "Victor Wembanyama", Team: "SAS", Position: PositionCenter, Age: 20, Stats: Stats{PPG: 21.4, RPG: 10.6, APG: 3.9, SPG: 1.2, BPG: 3.6, FG: 46.5, FT: 79.6, TOV: 3.7, GP: 71}, ADP: 5.2, Rank: 5, Trend: TrendUp},
	{ID: "p6", Name: "Anthony Davis", Team: "LAL", Position: PositionPowerForward, Age: 31, Stats: Stats{PPG: 24.7, RPG: 12.6, APG: 3.5, SPG: 1.2, BPG: 2.3, FG: 55.6, FT: 81.6, TOV: 2.1, GP: 76}, ADP: 6.5, Rank: 6, Trend: TrendSame, Injury: "DTD"},
	{ID: "p7", Name: "Jayson Tatum", Team: "BOS", Position: PositionSmallForward, Age: 26, Stats: Stats{PPG: 26.9, RPG: 8.1, APG: 4.9, SPG: 1.0, BPG: 0.6, FG: 47.1, FT: 83.3, TOV: 2.5, GP: 74}, ADP: 7.1, Rank: 7, Trend: TrendDown},
	{ID: "p8", Name: "Tyrese Haliburton", Team: "IND", Position: PositionPointGuard, Age: 24, Stats: Stats{PPG: 20.1, RPG: 3.9, APG: 10.9, SPG: 1.2, BPG: 0.7, FG: 47.7, FT: 85.5, TOV: 2.4, GP: 69}, ADP: 7.8, Rank: 8, Trend: TrendDown, Injury: "Out"},
	{ID: "p9", Name: "Anthony Edwards", Team: "MIN", Position: PositionShootingGuard, Age: 22, Stats: Stats{PPG: 25.9, RPG: 5.4, APG: 5.1, SPG: 1.3, BPG: 0.5, FG: 46.1, FT: 83.6, TOV: 2.8, GP: 79}, ADP: 9.2, Rank: 9, Trend: TrendUp},
	{ID: "p10", Name: "Kevin Durant", Team: "PHX", Position: PositionSmallForward, Age: 35, Stats: Stats{PPG: 27.1, RPG: 6.6, APG: 5.0, SPG: 0.9, BPG: 1.2, FG: 52.3, FT: 85.6, TOV: 3.3, GP: 75}, ADP: 10.0, Rank: 10, Trend: TrendSame},
	{ID: "p11", Name: "Donovan Mitchell", Team: "CLE", Position: PositionShootingGuard, Age: 27, Stats: Stats{PPG: 26.6, RPG: 5.1, APG: 6.1, SPG: 1.8, BPG: 0.4, FG: 46.2, FT: 86.4, TOV: 2.8, GP: 55}, ADP: 11.5, Rank: 11, Trend: TrendUp},
	{ID: "p12", Name: "Chet Holmgren", Team: "OKC", Position: PositionCenter, Age: 22, Stats: Stats{PPG: 16.5, RPG: 7.9, APG: 2.4, SPG: 0.8, BPG: 2.3, FG: 53.0, FT: 79.0, TOV: 1.7, GP: 82}, ADP: 12.3, Rank: 12, Trend: TrendUp},
	{ID: "p13", Name: "Jaylen Brown", Team: "BOS", Position: PositionShootingGuard, Age: 27, Stats: Stats{PPG: 23.0, RPG: 5.5, APG: 3.6, SPG: 1.2, BPG: 0.5, FG: 49.9, FT: 70.3, TOV: 2.5, GP: 70}, ADP: 13.1, Rank: 13, Trend: TrendSame},
	{ID: "p14", Name: "Domantas Sabonis", Team: "SAC", Position: PositionCenter, Age: 28, Stats: Stats{PPG: 19.4, RPG: 13.7, APG: 8.2, SPG: 0.9, BPG: 0.5, FG: 59.6, FT: 73.2, TOV: 3.4, GP: 82}, ADP: 14.5, Rank: 14, Trend: TrendSame},
	{ID: "p15", Name: "Trae Young", Team: "ATL", Position: PositionPointGuard, Age: 25, Stats: Stats{PPG: 25.7, RPG: 2.8, APG: 10.8, SPG: 1.1, BPG: 0.2, FG: 43.0, FT: 85.3, TOV: 4.4, GP: 54}, ADP: 15.2, Rank: 15, Trend: TrendDown},
	{ID: "p16", Name: "LaMelo Ball", Team: "CHA", Position: PositionPointGuard, Age: 23, Stats: Stats{PPG: 23.9, RPG: 5.1, APG: 8.0, SPG: 1.3, BPG: 0.3, FG: 43.3, FT: 87.0, TOV: 3.6, GP: 22}, ADP: 16.0, Rank: 16, Trend: TrendDown, Injury: "Out"},
	{ID: "p17", Name: "De'Aaron Fox", Team: "SAC", Position: PositionPointGuard, Age: 26, Stats: Stats{PPG: 26.6, RPG: 4.6, APG: 5.6, SPG: 2.0, BPG: 0.4, FG: 46.5, FT: 73.8, TOV: 2.6, GP: 74}, ADP: 17.3, Rank: 17, Trend: TrendUp},
	{ID: "p18", Name: "Kyrie Irving", Team: "DAL", Position: PositionPointGuard, Age: 32, Stats: Stats{PPG: 25.6, RPG: 5.0, APG: 5.2, SPG: 1.3, BPG: 0.5, FG: 49.7, FT: 90.5, TOV: 2.4, GP: 58}, ADP: 18.1, Rank: 18, Trend: TrendSame},
	{ID: "p19", Name: "Devin Booker", Team: "PHX", Position: PositionShootingGuard, Age: 27, Stats: Stats{PPG: 27.1, RPG: 4.5, APG: 6.9, SPG: 1.0, BPG: 0.4, FG: 49.2, FT: 86.8, TOV: 2.9, GP: 68}, ADP: 19.5, Rank: 19, Trend: TrendSame},
	{ID: "p20", Name: "Ja Morant", Team: "MEM", Position: PositionPointGuard, Age: 25, Stats: Stats{PPG: 25.1, RPG: 5.6, APG: 8.1, SPG: 0.8, BPG: 0.5, FG: 47.1, FT: 72.5, TOV: 3.0, GP: 9}, ADP: 20.0, Rank: 20, Trend: TrendDown, Injury: "Out"},
	{ID: "p21", Name: "Bam Adebayo", Team: "MIA", Position: PositionCenter, Age: 26, Stats: Stats{PPG: 19.3, RPG: 10.4, APG: 3.9, SPG: 1.1, BPG: 0.9, FG: 52.0, FT: 72.0, TOV: 2.7, GP: 71}, ADP: 21.2, Rank: 21, Trend: TrendSame},
	{ID: "p22", Name: "Pascal Siakam", Team: "IND", Position: PositionPowerForward, Age: 30, Stats: Stats{PPG: 21.3, RPG: 7.8, APG: 4.5, SPG: 0.6, BPG: 0.6, FG: 54.0, FT: 78.0, TOV: 2.4, GP: 75}, ADP: 22.5, Rank: 22, Trend: TrendUp},
	{ID: "p23", Name: "Scottie Barnes", Team: "TOR", Position: PositionSmallForward, Age: 22, Stats: Stats{PPG: 19.9, RPG: 8.2, APG: 6.1, SPG: 1.3, BPG: 1.5, FG: 47.5, FT: 77.0, TOV: 3.0, GP: 60}, ADP: 23.1, Rank: 23, Trend: TrendUp},
	{ID: "p24", Name: "Karl-Anthony Towns", Team: "MIN", Position: PositionCenter, Age: 28, Stats: Stats{PPG: 21.8, RPG: 8.3, APG: 3.0, SPG: 0.7, BPG: 0.7, FG: 50.4, FT: 87.3, TOV: 2.9, GP: 62}, ADP: 24.0, Rank: 24, Trend: TrendSame},
	{ID: "p25", Name: "Jalen Brunson", Team: "NYK", Position: PositionPointGuard, Age: 27, Stats: Stats{PPG: 28.7, RPG: 3.6, APG: 6.7, SPG: 0.9, BPG: 0.2, FG: 47.9, FT: 84.7, TOV: 2.4, GP: 77}, ADP: 25.5, Rank: 25, Trend: TrendUp},
	{ID: "p26", Name: "Paul George", Team: "PHI", Position: PositionSmallForward, Age: 34, Stats: Stats{PPG: 22.6, RPG: 5.2, APG: 3.5, SPG: 1.5, BPG: 0.4, FG: 47.1, FT: 90.7, TOV: 2.6, GP: 74}, ADP: 26.2, Rank: 26, Trend: TrendDown},
	{ID: "p27", Name: "Lauri Markkanen", Team: "UTA", Position: PositionPowerForward, Age: 27, Stats: Stats{PPG: 23.2, RPG: 8.2, APG: 2.0, SPG: 0.6, BPG: 0.6, FG: 48.0, FT: 89.9, TOV: 1.9, GP: 55}, ADP: 27.0, Rank: 27, Trend: TrendSame},
	{ID: "p28", Name: "Jaren Jackson Jr.", Team: "MEM", Position: PositionPowerForward, Age: 24, Stats: Stats{PPG: 22.5, RPG: 5.5, APG: 2.3, SPG: 1.0, BPG: 1.6, FG: 45.4, FT: 81.0, TOV: 2.4, GP: 66}, ADP: 28.3, Rank: 28, Trend: TrendSame},
	{ID: "p29", Name: "Franz Wagner", Team: "ORL", Position: PositionSmallForward, Age: 22, Stats: Stats{PPG: 19.7, RPG: 5.3, APG: 3.7, SPG: 1.1, BPG: 0.5, FG: 48.0, FT: 85.0, TOV: 2.0, GP: 72}, ADP: 29.1, Rank: 29, Trend: TrendUp},
	{ID: "p30", Name: "LeBron James", Team: "LAL", Position: PositionSmallForward, Age: 39, Stats: Stats{PPG: 25.7, RPG: 7.3, APG: 8.3, SPG: 1.3, BPG: 0.5, FG: 54.0, FT: 75.0, TOV: 3.5, GP: 71}, ADP: 30.0, Rank: 30, Trend: TrendDown},
}

// DefaultCatalog returns a copy of the built-in players.
func DefaultCatalog() []Player {
	return Clone(defaultCatalog)
}
