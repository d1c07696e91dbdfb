package catalog

import "github.com/romainfalanga/Romainflg/models"

func defaultRoles() []models.RoleSlot {
	return []models.RoleSlot{
		{Position: "COO", Name: models.OpenPosition, Percentage: 15},
		{Position: "CM", Name: models.OpenPosition, Percentage: 5},
	}
}

// DefaultProjects is the catalog seeded when no catalog file exists.
func DefaultProjects() []models.Project {
	return []models.Project{
		{
			ID:              "1",
			Slug:            "chess-value",
			Name:            "Chess Value",
			Description:     "Chess Value évalue en temps réel la valeur des pièces selon la position, pour analyser et améliorer vos stratégies aux échecs.",
			FullDescription: "Chess Value évalue en temps réel la valeur des pièces selon la position, pour analyser et améliorer vos stratégies aux échecs.",
			WebsiteURL:      "https://chessvalue.com",
			FundingURL:      "https://wedogood.co/projects/chessvalue",
			TelegramURL:     "https://t.me/ChessValue",
			Image:           "/logos/ChessValue.png",
			Roles:           defaultRoles(),
		},
		{
			ID:              "2",
			Slug:            "chess-13",
			Name:            "Chess 13",
			Description:     "Un plateau de 13 x 13. Un attaquant aux bords, un défenseur au centre. Préparez votre stratégie positionnel et matez votre adversaire !",
			FullDescription: "Un plateau de 13 x 13. Un attaquant aux bords, un défenseur au centre. Préparez votre stratégie positionnel et matez votre adversaire !",
			WebsiteURL:      "https://chess13.com",
			FundingURL:      "https://wedogood.co/projects/chess13",
			TelegramURL:     "https://t.me/Chess13Game",
			Image:           "/logos/Chess13.png",
			Roles:           defaultRoles(),
		},
		{
			ID:              "3",
			Slug:            "chess-100",
			Name:            "Chess 100",
			Description:     "Atteignez la 100e rangée sur un plateau 100 x 8. Créez vos parcours, relevez ceux des autres et devenez le plus rapide.",
			FullDescription: "Atteignez la 100e rangée sur un plateau 100 x 8. Créez vos parcours, relevez ceux des autres et devenez le plus rapide.",
			WebsiteURL:      "https://chess100.com",
			FundingURL:      "https://wedogood.co/projects/chess100",
			TelegramURL:     "https://t.me/Chess100Game",
			Image:           "/logos/Chess100.png",
			Roles:           defaultRoles(),
		},
		{
			ID:              "4",
			Slug:            "draft-chess",
			Name:            "Draft Chess",
			Description:     "L'échiquier où la partie commence avant le premier coup, en plaçant vos pièces tour à tour avec votre adversaire",
			FullDescription: "L'échiquier où la partie commence avant le premier coup, en plaçant vos pièces tour à tour avec votre adversaire",
			WebsiteURL:      "https://draftchess.com",
			FundingURL:      "https://wedogood.co/projects/draftchess",
			TelegramURL:     "https://t.me/DraftChessGame",
			Image:           "/logos/DraftChess.png",
			Roles:           defaultRoles(),
		},
	}
}
