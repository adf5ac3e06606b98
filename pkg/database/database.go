package database

import (
	"fmt"
	"log"

	"github.com/Cleverson128/METODO-VAP/internal/config"
	"github.com/Cleverson128/METODO-VAP/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema. Shared with the test suite,
// which runs it against an in-memory SQLite database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.CourseModule{},
		&model.ModuleCompletion{},
		&model.StudySession{},
		&model.ExerciseResult{},
		&model.Achievement{},
		&model.UserAchievement{},
	)
}

// Seed inserts the static Método VAP catalogs when the tables are
// empty: the twelve course modules and the achievement list.
func Seed(db *gorm.DB) error {
	var moduleCount int64
	if err := db.Model(&model.CourseModule{}).Count(&moduleCount).Error; err != nil {
		return err
	}
	if moduleCount == 0 {
		for _, m := range defaultModules() {
			if err := db.Create(&m).Error; err != nil {
				return err
			}
		}
	}

	var achievementCount int64
	if err := db.Model(&model.Achievement{}).Count(&achievementCount).Error; err != nil {
		return err
	}
	if achievementCount == 0 {
		for _, a := range defaultAchievements() {
			if err := db.Create(&a).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func defaultModules() []model.CourseModule {
	return []model.CourseModule{
		{Title: "Boas-vindas ao Método VAP", Description: "Apresentação do curso, como navegar pela plataforma e o que esperar de cada módulo.", ExerciseFile: "modulo-01.pdf", Points: 50, EstimatedMinutes: 15},
		{Title: "Fundamentos do Método VAP", Description: "Os três pilares do método: visão, ação e performance aplicados aos estudos.", ExerciseFile: "modulo-02.pdf", Points: 50, EstimatedMinutes: 35},
		{Title: "Mentalidade de Alta Performance", Description: "Como construir constância e eliminar a autossabotagem na rotina de estudos.", ExerciseFile: "modulo-03.pdf", Points: 75, EstimatedMinutes: 40},
		{Title: "Organização e Rotina de Estudos", Description: "Montando um cronograma realista que cabe na sua semana.", ExerciseFile: "modulo-04.pdf", Points: 75, EstimatedMinutes: 30},
		{Title: "Técnicas de Memorização", Description: "Repetição espaçada, recordação ativa e outras técnicas comprovadas.", ExerciseFile: "modulo-05.pdf", Points: 100, EstimatedMinutes: 45},
		{Title: "Leitura Acelerada", Description: "Dobre sua velocidade de leitura mantendo a compreensão.", ExerciseFile: "modulo-06.pdf", Points: 100, EstimatedMinutes: 40},
		{Title: "Mapas Mentais", Description: "Transformando conteúdos densos em mapas visuais fáceis de revisar.", ExerciseFile: "modulo-07.pdf", Points: 100, EstimatedMinutes: 35},
		{Title: "Revisão Programada", Description: "O sistema de revisões que consolida o conteúdo na memória de longo prazo.", ExerciseFile: "modulo-08.pdf", Points: 125, EstimatedMinutes: 40},
		{Title: "Simulados e Autoavaliação", Description: "Como usar simulados para medir a evolução e corrigir a rota.", ExerciseFile: "modulo-09.pdf", Points: 125, EstimatedMinutes: 50},
		{Title: "Controle Emocional em Provas", Description: "Técnicas para controlar a ansiedade antes e durante a prova.", ExerciseFile: "modulo-10.pdf", Points: 150, EstimatedMinutes: 45},
		{Title: "Estratégia de Prova", Description: "Gestão de tempo e ordem de resolução para maximizar a pontuação.", ExerciseFile: "modulo-11.pdf", Points: 150, EstimatedMinutes: 40},
		{Title: "Plano de Ação Final", Description: "Consolidando tudo em um plano de ação pessoal para a reta final.", ExerciseFile: "modulo-12.pdf", Points: 200, EstimatedMinutes: 60},
	}
}

func defaultAchievements() []model.Achievement {
	return []model.Achievement{
		{ID: "first-module", Title: "Primeiro Passo", Description: "Complete seu primeiro módulo do curso", Icon: "Trophy", Points: 50, ConditionType: model.ModulesCompleted, ConditionGoal: 1},
		{ID: "streak-3", Title: "Dedicação Constante", Description: "Complete 3 módulos seguidos", Icon: "Flame", Points: 100, ConditionType: model.ModulesCompleted, ConditionGoal: 3},
		{ID: "streak-5", Title: "Persistência Exemplar", Description: "Complete 5 módulos seguidos", Icon: "Target", Points: 150, ConditionType: model.ModulesCompleted, ConditionGoal: 5},
		{ID: "time-warrior", Title: "Guerreiro do Tempo", Description: "Estude por mais de 10 horas (600 minutos)", Icon: "Clock", Points: 200, ConditionType: model.StudyTime, ConditionGoal: 600},
		{ID: "perfectionist", Title: "Perfeccionista", Description: "Obtenha 100% em 3 exercícios diferentes", Icon: "Star", Points: 250, ConditionType: model.PerfectScore, ConditionGoal: 3},
		{ID: "speed-learner", Title: "Aprendiz Veloz", Description: "Complete um módulo em menos de 30 minutos", Icon: "Zap", Points: 75, ConditionType: model.Speed, ConditionGoal: 30},
		{ID: "week-streak", Title: "Semana Impecável", Description: "Estude por 7 dias seguidos", Icon: "CalendarCheck", Points: 150, ConditionType: model.Streak, ConditionGoal: 7},
		{ID: "marathon", Title: "Maratonista dos Estudos", Description: "Estude por mais de 20 horas (1200 minutos)", Icon: "Activity", Points: 300, ConditionType: model.StudyTime, ConditionGoal: 1200},
		{ID: "scholar", Title: "Estudioso Dedicado", Description: "Complete metade do curso (6 módulos)", Icon: "BookOpen", Points: 400, ConditionType: model.ModulesCompleted, ConditionGoal: 6},
		{ID: "master", Title: "Mestre do Método VAP", Description: "Complete todos os módulos do curso", Icon: "Crown", Points: 500, ConditionType: model.ModulesCompleted, ConditionGoal: 12},
		{ID: "legendary", Title: "Legenda VAP", Description: "Complete 10 módulos do curso", Icon: "Award", Points: 600, ConditionType: model.ModulesCompleted, ConditionGoal: 10},
	}
}
