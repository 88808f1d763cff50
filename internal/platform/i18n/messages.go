// Copyright (c) 2026 marsAI. All rights reserved.

package i18n

// frenchMessages is the French catalog, keyed by the English source text.
// Keys with verbs (%d, %s) keep the same verbs in the same order.
var frenchMessages = map[string]string{
	// Generic errors
	"An unexpected error occurred":             "Une erreur inattendue est survenue",
	"Validation failed":                        "La validation a échoué",
	"Invalid JSON payload":                     "Corps JSON invalide",
	"Resource already exists":                  "La ressource existe déjà",
	"Referenced resource does not exist":       "La ressource référencée n'existe pas",
	"Too many requests, please slow down":      "Trop de requêtes, veuillez ralentir",
	"Resource not found":                       "Ressource introuvable",
	"Authentication required":                  "Authentification requise",
	"Invalid authorization format":             "Format d'autorisation invalide",
	"Invalid or expired token":                 "Jeton invalide ou expiré",
	"Insufficient permissions":                 "Permissions insuffisantes",
	"Please fill in all required fields":       "Veuillez remplir tous les champs obligatoires",
	"Submissions are closed":                   "Les soumissions sont fermées",
	"A festival with this slug already exists": "Un festival avec ce slug existe déjà",

	// Not found
	"Festival not found":       "Festival introuvable",
	"Draft not found":          "Brouillon introuvable",
	"Submission not found":     "Soumission introuvable",
	"Collaborator not found":   "Collaborateur introuvable",
	"Still not found":          "Photogramme introuvable",
	"Media kind not found":     "Type de média introuvable",
	"Film not found":           "Film introuvable",
	"Registration not found":   "Inscription introuvable",
	"User not found":           "Utilisateur introuvable",
	"Reference list not found": "Liste de référence introuvable",
	"Evaluation not found":     "Évaluation introuvable",
	"Session not found":        "Session introuvable",

	// Field validation
	"This field is required":            "Ce champ est obligatoire",
	"Maximum %d characters":             "Maximum %d caractères",
	"Minimum %d characters":             "Minimum %d caractères",
	"Must be between %d and %d":         "Doit être compris entre %d et %d",
	"Must be a valid email address":     "Doit être une adresse e-mail valide",
	"Must be a valid URL":               "Doit être une URL valide",
	"Must be a valid UUID":              "Doit être un UUID valide",
	"Must be one of: %s":                "Doit être l'une des valeurs : %s",
	"Must be a valid date (YYYY-MM-DD)": "Doit être une date valide (AAAA-MM-JJ)",
	"Must be a hex color (#RRGGBB)":     "Doit être une couleur hexadécimale (#RRGGBB)",
	"Must be a valid ISO country code":  "Doit être un code pays ISO valide",
	"Must be an integer":                "Doit être un nombre entier",

	"Must be a valid URL slug (lowercase letters, digits, hyphens only)": "Doit être un slug valide (minuscules, chiffres et tirets uniquement)",

	// Submission wizard
	"You must be at least 18 years old to submit a film": "Vous devez avoir au moins 18 ans pour soumettre un film",
	"Must be a whole number of seconds":                  "Doit être un nombre entier de secondes",
	"At most 3 stills":                                   "3 photogrammes maximum",
	"Unsupported file type":                              "Type de fichier non pris en charge",
	"File is too large":                                  "Le fichier est trop volumineux",
	"Too many collaborators":                             "Trop de collaborateurs",
	"Submission is only possible from the last step":     "La soumission n'est possible qu'à la dernière étape",

	// Jury
	"Evaluation already submitted":          "Évaluation déjà envoyée",
	"Account is not assigned to a festival": "Le compte n'est rattaché à aucun festival",

	// Administration
	"Only validated submissions can be published": "Seules les soumissions validées peuvent être publiées",
	"Cannot manage an account with this role":     "Impossible de gérer un compte avec ce rôle",

	// Events
	"Select at least one event":                 "Sélectionnez au moins un événement",
	"You are already registered for this event": "Vous êtes déjà inscrit à cet événement",
	"This event is full":                        "Cet événement est complet",
	"Unknown event":                             "Événement inconnu",

	// Accounts
	"Invalid email or password":                                "E-mail ou mot de passe invalide",
	"Account is disabled":                                      "Le compte est désactivé",
	"An account with this email already exists":                "Un compte avec cet e-mail existe déjà",
	"An account with this username already exists":             "Un compte avec ce nom d'utilisateur existe déjà",
	"Invalid or expired refresh token":                         "Jeton de rafraîchissement invalide ou expiré",
	"Invalid or expired reset token":                           "Jeton de réinitialisation invalide ou expiré",
	"Current password is incorrect":                            "Le mot de passe actuel est incorrect",
	"If this email is registered, a reset link has been sent.": "Si cette adresse est enregistrée, un lien de réinitialisation a été envoyé.",
}
