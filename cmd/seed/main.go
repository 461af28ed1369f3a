package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"freelahub/internal/database"
	"freelahub/internal/domain"
	"freelahub/internal/pkg/brdoc"
	"freelahub/internal/repository"
)

const seedPassword = "senha123"

type account struct {
	email    string
	name     string
	role     domain.Role
	complete bool
}

var accounts = []account{
	{"contato@acme.com.br", "Acme Tecnologia", domain.RoleCompany, true},
	{"rh@padaria.com.br", "Padaria Pão Quente", domain.RoleCompany, false},
	{"ana@example.com", "Ana Souza", domain.RoleFreelancer, true},
	{"bruno@example.com", "Bruno Lima", domain.RoleFreelancer, true},
	{"carla@example.com", "Carla Dias", domain.RoleFreelancer, false},
}

var skills = []string{"Go", "PostgreSQL", "React", "Figma", "Docker", "Marketing", "Redação"}

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "freelahub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	projects := repository.NewProjectRepository(db)
	candidacies := repository.NewCandidacyRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password:", err)
	}

	log.Println("Creating users...")
	var companies, freelancers []*domain.User
	for i, a := range accounts {
		u := &domain.User{
			Email:         a.email,
			Name:          a.name,
			Phone:         fmt.Sprintf("+55 81 99999-00%02d", i),
			PasswordHash:  string(hash),
			Role:          a.role,
			EmailVerified: true,
		}
		p, _ := domain.NewRoleProfile(a.role, 50)
		err := users.CreateWithProfile(ctx, u, p)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			log.Printf("skip %s: already exists", a.email)
			continue
		}
		if err != nil {
			log.Fatalf("create %s: %v", a.email, err)
		}

		if a.complete {
			if err := profiles.SaveCompletion(ctx, u.ID, "Recife", "Boa Viagem", completedProfile(i, a.role)); err != nil {
				log.Fatalf("complete %s: %v", a.email, err)
			}
		}

		switch a.role {
		case domain.RoleCompany:
			companies = append(companies, u)
		case domain.RoleFreelancer:
			freelancers = append(freelancers, u)
		}
	}

	log.Println("Creating projects...")
	var posted []*domain.Project
	for i, c := range companies {
		for j := 0; j < 3; j++ {
			deadline := time.Now().AddDate(0, 1+j, 0).UTC().Truncate(24 * time.Hour)
			p := &domain.Project{
				CompanyID:   c.ID,
				Title:       fmt.Sprintf("Projeto %d.%d de %s", i+1, j+1, c.Name),
				Description: "Projeto de demonstração criado pelo seed.",
				Category:    []string{"Tecnologia", "Design", "Marketing"}[j],
				Budget:      float64(1000 * (j + 1)),
				Deadline:    &deadline,
				City:        "Recife",
				Skills:      pickSkills(2),
				Status:      domain.ProjectOpen,
			}
			if err := projects.Create(ctx, p); err != nil {
				log.Fatalf("create project: %v", err)
			}
			posted = append(posted, p)
		}
	}

	log.Println("Creating candidacies...")
	created := 0
	for _, f := range freelancers {
		for _, p := range posted {
			if rand.IntN(2) == 0 {
				continue
			}
			value := p.Budget * 0.9
			err := candidacies.Create(ctx, &domain.Candidacy{
				ProjectID:     p.ID,
				FreelancerID:  f.ID,
				Message:       fmt.Sprintf("Olá! Sou %s e tenho interesse no projeto.", f.Name),
				ProposedValue: &value,
				Status:        domain.CandidacyPending,
			})
			if errors.Is(err, repository.ErrDuplicateCandidacy) {
				continue
			}
			if err != nil {
				log.Fatalf("create candidacy: %v", err)
			}
			created++
		}
	}

	log.Printf("Seed completed: users=%d projects=%d candidacies=%d", len(companies)+len(freelancers), len(posted), created)
	log.Printf("All accounts use password %q", seedPassword)
}

// completedProfile returns a profile with a checksum-valid identifier
// derived from n.
func completedProfile(n int, role domain.Role) domain.RoleProfile {
	switch role {
	case domain.RoleCompany:
		base := fmt.Sprintf("%08d0001", 11222333+n)
		check, _ := brdoc.CNPJCheckDigits(base)
		return &domain.CompanyProfile{
			CNPJ:      base + check,
			LegalName: fmt.Sprintf("Empresa Demo %d LTDA", n),
			Sector:    "Tecnologia",
		}
	case domain.RoleFreelancer:
		base := fmt.Sprintf("%09d", 123456780+n)
		check, _ := brdoc.CPFCheckDigits(base)
		return &domain.FreelancerProfile{
			CPF:        base + check,
			Profession: "Desenvolvedor(a)",
			Experience: "5 anos",
			HourlyRate: 80,
			Skills:     pickSkills(3),
		}
	}
	return nil
}

func pickSkills(n int) domain.SkillList {
	perm := rand.Perm(len(skills))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, skills[i])
	}
	return domain.NewSkillList(out)
}
