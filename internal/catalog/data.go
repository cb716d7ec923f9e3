package catalog

// Prices are derived from a 300 € day rate; options from ~37 €/h.

func defaultProjects() []Project {
	return []Project{
		{
			Type:  ProjectWebsite,
			Label: Text{FR: "Site Web", EN: "Website"},
			Icon:  "Globe",
			SubTypes: []SubType{
				{
					ID:        "landing",
					Name:      Text{FR: "Landing Page", EN: "Landing Page"},
					BasePrice: 1750,
					Duration:  Text{FR: "1-2 semaines", EN: "1-2 weeks"},
					Includes:  []string{"seo", "form", "analytics"},
				},
				{
					ID:        "portfolio",
					Name:      Text{FR: "Portfolio Créatif", EN: "Creative Portfolio"},
					BasePrice: 3000,
					Duration:  Text{FR: "2-3 semaines", EN: "2-3 weeks"},
					Includes:  []string{"seo", "form", "analytics", "animations"},
				},
				{
					ID:        "corporate",
					Name:      Text{FR: "Site Vitrine", EN: "Business Website"},
					BasePrice: 4250,
					Duration:  Text{FR: "3-4 semaines", EN: "3-4 weeks"},
					Includes:  []string{"seo", "form", "analytics", "animations", "multilang"},
				},
			},
		},
		{
			Type:  ProjectApplication,
			Label: Text{FR: "Application", EN: "Application"},
			Icon:  "Zap",
			SubTypes: []SubType{
				{
					ID:        "mvp",
					Name:      Text{FR: "MVP", EN: "MVP"},
					BasePrice: 6250,
					Duration:  Text{FR: "4-6 semaines", EN: "4-6 weeks"},
					Includes:  []string{"seo", "form", "auth", "analytics"},
				},
				{
					ID:        "saas",
					Name:      Text{FR: "SaaS Complet", EN: "Full SaaS"},
					BasePrice: 12500,
					Duration:  Text{FR: "8-12 semaines", EN: "8-12 weeks"},
					Includes:  []string{"seo", "form", "auth", "analytics", "stripe", "emails"},
				},
				{
					ID:        "dashboard",
					Name:      Text{FR: "Dashboard Métier", EN: "Business Dashboard"},
					BasePrice: 8750,
					Duration:  Text{FR: "6-8 semaines", EN: "6-8 weeks"},
					Includes:  []string{"seo", "form", "auth", "analytics"},
				},
			},
		},
		{
			Type:  ProjectCustom,
			Label: Text{FR: "Sur Mesure", EN: "Custom"},
			Icon:  "Wrench",
			SubTypes: []SubType{
				{
					ID:        "audit",
					Name:      Text{FR: "Audit Technique", EN: "Technical Audit"},
					BasePrice: 1200,
					Duration:  Text{FR: "3-5 jours", EN: "3-5 days"},
					Includes:  []string{},
				},
				{
					ID:        "dev",
					Name:      Text{FR: "Journée Dev", EN: "Dev Day"},
					BasePrice: 300,
					Duration:  Text{FR: "1 jour", EN: "1 day"},
					Includes:  []string{},
				},
			},
		},
		{
			Type:  ProjectShopify,
			Label: Text{FR: "Shopify", EN: "Shopify"},
			Icon:  "ShoppingBag",
			SubTypes: []SubType{
				{
					ID:        "headless",
					Name:      Text{FR: "Boutique Headless", EN: "Headless Store"},
					BasePrice: 7500,
					Duration:  Text{FR: "5-7 semaines", EN: "5-7 weeks"},
					Includes:  []string{"seo", "analytics", "stripe", "animations"},
				},
			},
		},
	}
}

func defaultOptions() []Option {
	return []Option{
		{
			ID:   "auth",
			Name: Text{FR: "Authentification", EN: "Authentication"},
			Description: Text{
				FR: "Inscription, connexion, mot de passe oublié et protection des routes privées.",
				EN: "Sign up, login, forgot password flows and protected private routes.",
			},
			Price:    300,
			Category: CategoryTech,
		},
		{
			ID:   "stripe",
			Name: Text{FR: "Paiement Stripe", EN: "Stripe Payment"},
			Description: Text{
				FR: "Intégration complète : paiement par carte sécurisé et reçus automatiques.",
				EN: "Full integration: secure card payments and automatic receipts.",
			},
			Price:    250,
			Category: CategoryTech,
		},
		{
			ID:   "cms",
			Name: Text{FR: "CMS (Strapi/Sanity)", EN: "CMS (Strapi/Sanity)"},
			Description: Text{
				FR: "Interface d'administration pour gérer vos textes et images en autonomie.",
				EN: "Admin dashboard to manage your text and images independently.",
			},
			Price:    300,
			Category: CategoryTech,
		},
		{
			ID:   "multilang",
			Name: Text{FR: "Multilingue", EN: "Multilingual"},
			Description: Text{
				FR: "Site disponible en plusieurs langues avec détection automatique.",
				EN: "Website available in multiple languages with automatic detection.",
			},
			Price:    150,
			Category: CategoryTech,
		},
		{
			ID:   "form",
			Name: Text{FR: "Formulaire avancé", EN: "Advanced Form"},
			Description: Text{
				FR: "Validation des données en temps réel, protection anti-spam et notifications.",
				EN: "Real-time data validation, anti-spam protection and email notifications.",
			},
			Price:    100,
			Category: CategoryTech,
		},
		{
			ID:   "emails",
			Name: Text{FR: "Emails transactionnels", EN: "Transactional Emails"},
			Description: Text{
				FR: "Templates d'emails HTML personnalisés à votre image de marque.",
				EN: "Custom HTML email templates matching your brand identity.",
			},
			Price:    200,
			Category: CategoryTech,
		},
		{
			ID:   "seo",
			Name: Text{FR: "SEO technique", EN: "Technical SEO"},
			Description: Text{
				FR: "Optimisation complète pour Google : balises méta, sitemap et performance.",
				EN: "Full Google optimization: meta tags, sitemap and performance.",
			},
			Price:    150,
			Category: CategoryMarketing,
		},
		{
			ID:   "analytics",
			Name: Text{FR: "Analytics", EN: "Analytics"},
			Description: Text{
				FR: "Suivi d'audience respectueux de la vie privée (conforme RGPD).",
				EN: "Privacy-friendly audience tracking (GDPR compliant).",
			},
			Price:    75,
			Category: CategoryMarketing,
		},
		{
			ID:   "newsletter",
			Name: Text{FR: "Newsletter", EN: "Newsletter"},
			Description: Text{
				FR: "Formulaire d'inscription connecté à votre outil marketing préféré.",
				EN: "Signup form connected to your favorite marketing tool.",
			},
			Price:    150,
			Category: CategoryMarketing,
		},
		{
			ID:   "animations",
			Name: Text{FR: "Animations avancées", EN: "Advanced Animations"},
			Description: Text{
				FR: "Expérience immersive : transitions fluides et micro-interactions soignées.",
				EN: "Immersive experience: smooth transitions and polished micro-interactions.",
			},
			Price:    200,
			Category: CategoryDesign,
		},
		{
			ID:   "darkmode",
			Name: Text{FR: "Dark mode", EN: "Dark Mode"},
			Description: Text{
				FR: "Thème sombre/clair alternable qui respecte les préférences utilisateur.",
				EN: "Toggleable dark/light theme respecting user preferences.",
			},
			Price:    150,
			Category: CategoryDesign,
		},
		{
			ID:   "maintenance",
			Name: Text{FR: "Maintenance 3 mois", EN: "3-Month Maintenance"},
			Description: Text{
				FR: "Garantie de fonctionnement, mises à jour de sécurité et corrections.",
				EN: "Uptime guarantee, security updates and bug fixes.",
			},
			Price:    600,
			Category: CategorySupport,
		},
	}
}

func defaultCategories() []CategoryMeta {
	return []CategoryMeta{
		{Category: CategoryTech, Label: Text{FR: "Technique", EN: "Technical"}, Icon: "Code2"},
		{Category: CategoryMarketing, Label: Text{FR: "Marketing", EN: "Marketing"}, Icon: "TrendingUp"},
		{Category: CategoryDesign, Label: Text{FR: "Design", EN: "Design"}, Icon: "Palette"},
		{Category: CategorySupport, Label: Text{FR: "Support", EN: "Support"}, Icon: "Wrench"},
	}
}
