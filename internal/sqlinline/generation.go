package sqlinline

// Postgres statements for the generation history. Every statement carries a
// `--sql <uuid>` marker that infra.SQLRunner strips and logs.

const QCreateGenerationEvents = `--sql 52dd7c22-b342-41b3-8276-3bdbc26499f6
create table if not exists generation_events (
  id text primary key,
  session_id text not null,
  mode text not null,
  ok boolean not null,
  category text not null default '',
  http_status int not null,
  artifact_ref text not null default '',
  message text not null default '',
  attempts int not null default 0,
  started_at timestamptz not null,
  finished_at timestamptz not null
);
create index if not exists generation_events_session_idx
  on generation_events (session_id, finished_at desc);
`

const QInsertGenerationEvent = `--sql a972fcd0-3b73-41bf-833d-cf1c69cf13ae
insert into generation_events(
  id,
  session_id,
  mode,
  ok,
  category,
  http_status,
  artifact_ref,
  message,
  attempts,
  started_at,
  finished_at
) values (
  $1::text,
  $2::text,
  $3::text,
  $4::boolean,
  $5::text,
  $6::int,
  $7::text,
  $8::text,
  $9::int,
  $10::timestamptz,
  $11::timestamptz
)
on conflict (id) do nothing;
`

const QRecentGenerationEvents = `--sql a7702240-65b6-40dc-8849-9eb195755939
select
  id,
  session_id,
  mode,
  ok,
  category,
  http_status,
  artifact_ref,
  message,
  attempts,
  started_at,
  finished_at
from generation_events
where ($1::text = '' or session_id = $1::text)
order by finished_at desc
limit $2::int;
`
