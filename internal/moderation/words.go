package moderation

// defaultDenylist is the built-in list of disallowed words and phrases in
// Argentine Spanish. Entries are written naturally; NewDenylist normalizes
// them, so accents, case and punctuation in this list do not matter.
var defaultDenylist = []string{
	// insultos
	"puto", "puta", "putos", "putas",
	"boludo", "boluda", "boludos", "boludas",
	"pelotudo", "pelotuda", "pelotudos", "pelotudas",
	"hijo de puta", "hija de puta", "hdp",
	"forro", "forra", "forros", "forras",
	"garca", "garcas",
	"choto", "chota", "chotos", "chotas",
	"cagón", "cagona", "cagones", "cagonas",
	"maricón", "maricona", "maricones", "mariconas",
	"trolo", "trola", "trolos", "trolas",
	"mogólico", "mogólica", "mogólicos", "mogólicas",
	"retrasado", "retrasada", "retrasados", "retrasadas",
	"idiota", "idiotas", "imbécil", "imbéciles",
	"estúpido", "estúpida", "estúpidos", "estúpidas",
	"tarado", "tarada", "tarados", "taradas",
	"gil", "giles", "gilada",
	"cretino", "cretina", "cretinos", "cretinas",

	// vulgaridades
	"mierda", "mierdas",
	"cagar", "cagaste", "cagó", "cagamos", "cagada", "cagadas",
	"concha", "conchas",
	"pija", "pijas", "verga", "vergas",
	"culo", "culos", "orto", "ortos",
	"chupame", "chupala", "chupamela",
	"coger", "cogiste", "cogió", "cogeme", "cogete",
	"cojer", "cojiste", "cojio",
	"follar", "follaste", "folló",
	"garchar", "garchaste", "garchó",
	"culeado", "culeada", "culear",
	"chingar", "chingaste", "chingó", "chingada", "chingado",
	"jodete", "carajo", "carajos",

	// sexual
	"sexo", "sexual", "sexuales",
	"porno", "pornografía", "pornográfico",
	"masturbar", "masturbación", "masturbarse",
	"orgasmo", "orgasmos",
	"pene", "penes", "vagina", "vaginas",
	"coito", "coitos", "tetas", "teta",
	"eyacular", "eyaculación", "erección",
	"desnudo", "desnuda", "desnudos", "desnudas",

	// discriminación
	"negro de mierda", "judío de mierda", "indio de mierda",
	"puto marica", "tortillera", "tortilleras",

	// delitos y drogas
	"chorear", "choreo", "choreaste", "chorro", "chorros",
	"afanar", "afanaste", "afanó",
	"matar", "mataste", "mató", "asesinar",
	"violar", "violador", "violación",
	"drogas", "droga", "merca", "faso", "porro",
	"cocaína", "marihuana", "éxtasis",

	// variantes con símbolos y números
	"put0", "p_u_t_o", "p.u.t.o",
	"bolud0", "b0ludo", "b.o.l.u.d.o",
	"pelotud0", "p3l0tud0", "p.e.l.o.t.u.d.o",
	"mierd4", "m1erd4", "m.i.e.r.d.a",
	"c0ger", "c0j3r",

	// frases
	"andá a cagar", "andate a cagar",
	"andate a la mierda", "vete a la mierda",
	"que te den", "que te jodan",
	"que se vaya a la mierda",
	"la puta madre", "la concha de tu madre", "la concha de la lora",
	"la puta que te parió", "me cago en",
	"chupame la pija", "metete lo en el orto",

	// política
	"político", "política", "políticos", "políticas",
	"partido político", "partidos políticos",
	"gobierno", "gobiernos",
	"presidente", "presidenta", "presidentes",
	"diputado", "diputada", "diputados",
	"senador", "senadora", "senadores",
	"elección", "elecciones", "electoral",
	"votación", "campaña electoral", "campaña política",
	"candidato", "candidata", "candidatos", "candidatas",
	"kirchnerismo", "kirchnerista", "kirchneristas",
	"macrismo", "macrista", "macristas",
	"peronismo", "peronista", "peronistas",
	"libertario", "libertarios", "libertad avanza",
	"milei", "javier milei", "cristina kirchner", "cfk",
	"macri", "mauricio macri", "alberto fernández",
	"sergio massa", "rodríguez larreta", "patricia bullrich",
	"kicillof", "axel kicillof",
	"congreso", "legislatura", "dictadura", "golpe de estado",
	"corrupción", "corrupto", "corruptos",

	// religión
	"religión", "religiosa", "religioso", "religiosos",
	"iglesia", "iglesias", "catedral", "catedrales",
	"mezquita", "sinagoga",
	"biblia", "corán", "torá", "evangelio",
	"dios", "jesús", "jesucristo", "cristo",
	"mahoma", "virgen maría",
	"cristianismo", "catolicismo", "islam", "judaísmo",
	"evangélico", "evangélicos", "ateísmo",
	"sacerdote", "obispo", "rabino", "rabinos",
	"fe religiosa", "culto religioso", "misa", "rezar", "oración",
	"pecado", "pecados", "infierno",
}
